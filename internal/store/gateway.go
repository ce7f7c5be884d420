package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oyaguma3/ims-hss-frontend-poc/internal/credential"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/profile"
	"github.com/oyaguma3/ims-hss-frontend-poc/pkg/apperr"
	"github.com/redis/go-redis/v9"
)

// Subscription は公開識別子に対するキャッシュレコードを表す。
type Subscription struct {
	Profile              string                    // 加入プロファイル文書（XML）
	State                profile.RegistrationState // 登録状態
	AssociatedPrivateIDs []string                  // 関連づけられた秘密識別子
	TTL                  time.Duration             // 残り有効期間。0は無期限
}

// PutSubscriptionParams はPutSubscriptionへの入力を表す。
type PutSubscriptionParams struct {
	PublicIDs  []string
	Profile    string
	State      profile.RegistrationState
	WithState  bool // falseの場合、登録状態カラムを書き込まない
	PrivateIDs []string
	Timestamp  int64 // マイクロ秒単位のクライアントタイムスタンプ
	TTL        time.Duration
}

// Gateway は加入者キャッシュへの型付き操作を定義する。
type Gateway interface {
	// GetAuthVector は秘密識別子のDigest認証ベクターを取得する。
	// impuが空でない場合は関連づけの存在も確認する。
	GetAuthVector(ctx context.Context, impi, impu string) (*credential.DigestVector, error)

	// GetAssociatedPublicIDs は秘密識別子に関連づけられた公開識別子を返す。
	GetAssociatedPublicIDs(ctx context.Context, impi string) ([]string, error)

	// GetSubscription は公開識別子のキャッシュレコードを取得する。
	GetSubscription(ctx context.Context, impu string) (*Subscription, error)

	// PutSubscription は暗黙登録セットの全公開識別子にレコードを書き込む。
	PutSubscription(ctx context.Context, p *PutSubscriptionParams) error

	// PutAssociatedPrivateID は全公開識別子の行へ秘密識別子の関連を追記する。
	PutAssociatedPrivateID(ctx context.Context, impus []string, impi string, ts int64, ttl time.Duration) error

	// PutAssociatedPublicID は秘密識別子の行へ公開識別子の関連を追記する。
	PutAssociatedPublicID(ctx context.Context, impi, impu string, ts int64, ttl time.Duration) error

	// DeletePublicIDs は公開識別子の行を削除し、秘密識別子側の関連も取り除く。
	DeletePublicIDs(ctx context.Context, impus, impis []string, ts int64) error
}

// gateway はGatewayインターフェースの実装。
type gateway struct {
	client *redis.Client
}

// NewGateway は新しいキャッシュゲートウェイを生成する。
func NewGateway(client *redis.Client) Gateway {
	return &gateway{client: client}
}

// GetAuthVector は秘密識別子のDigest認証ベクターを取得する。
func (g *gateway) GetAuthVector(ctx context.Context, impi, impu string) (*credential.DigestVector, error) {
	key := privateIDKey(impi)
	row, err := g.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, classify("GetAuthVector", key, err)
	}

	ha1, ok := row[FieldDigestHA1]
	if !ok {
		return nil, apperr.NewCacheError("GetAuthVector", key, apperr.ErrNotFound)
	}

	// 公開識別子が指定されている場合、関連づけが存在しなければミス扱い
	if impu != "" {
		if _, ok := row[FieldPrefixAssocPublicID+impu]; !ok {
			return nil, apperr.NewCacheError("GetAuthVector", key, apperr.ErrNotFound)
		}
	}

	return &credential.DigestVector{
		HA1:   ha1,
		Realm: row[FieldDigestRealm],
		QOP:   row[FieldDigestQOP],
	}, nil
}

// GetAssociatedPublicIDs は秘密識別子に関連づけられた公開識別子を返す。
// 行の並び順を安定させるため辞書順にソートする。
func (g *gateway) GetAssociatedPublicIDs(ctx context.Context, impi string) ([]string, error) {
	key := privateIDKey(impi)
	row, err := g.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, classify("GetAssociatedPublicIDs", key, err)
	}
	if len(row) == 0 {
		return nil, apperr.NewCacheError("GetAssociatedPublicIDs", key, apperr.ErrNotFound)
	}

	var ids []string
	for field := range row {
		if strings.HasPrefix(field, FieldPrefixAssocPublicID) {
			ids = append(ids, strings.TrimPrefix(field, FieldPrefixAssocPublicID))
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// GetSubscription は公開識別子のキャッシュレコードを取得する。
func (g *gateway) GetSubscription(ctx context.Context, impu string) (*Subscription, error) {
	key := publicIDKey(impu)
	row, err := g.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, classify("GetSubscription", key, err)
	}
	if len(row) == 0 {
		return nil, apperr.NewCacheError("GetSubscription", key, apperr.ErrNotFound)
	}

	sub := &Subscription{Profile: row[FieldProfile]}

	// 登録状態カラムが無い場合、プロファイルがあれば未登録とみなす
	if raw, ok := row[FieldIsRegistered]; ok && raw != "" {
		sub.State = profile.ParseRegistrationState(raw)
	} else if sub.Profile != "" {
		sub.State = profile.StateUnregistered
	}

	for field := range row {
		if strings.HasPrefix(field, FieldPrefixAssocPrivateID) {
			sub.AssociatedPrivateIDs = append(sub.AssociatedPrivateIDs,
				strings.TrimPrefix(field, FieldPrefixAssocPrivateID))
		}
	}
	sort.Strings(sub.AssociatedPrivateIDs)

	ttl, err := g.client.TTL(ctx, key).Result()
	if err != nil {
		return nil, classify("GetSubscription", key, err)
	}
	if ttl > 0 {
		sub.TTL = ttl
	}

	return sub, nil
}

// PutSubscription は暗黙登録セットの全公開識別子にレコードを書き込む。
func (g *gateway) PutSubscription(ctx context.Context, p *PutSubscriptionParams) error {
	pipe := g.client.TxPipeline()

	for _, impu := range p.PublicIDs {
		key := publicIDKey(impu)

		fields := map[string]any{
			FieldProfile:   p.Profile,
			FieldTimestamp: fmt.Sprintf("%d", p.Timestamp),
		}
		if p.WithState {
			fields[FieldIsRegistered] = p.State.String()
		}
		for _, impi := range p.PrivateIDs {
			fields[FieldPrefixAssocPrivateID+impi] = "1"
		}

		pipe.HSet(ctx, key, fields)
		expire(ctx, pipe, key, p.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return classify("PutSubscription", KeyPrefixPublicID, err)
	}
	return nil
}

// PutAssociatedPrivateID は全公開識別子の行へ秘密識別子の関連を追記する。
func (g *gateway) PutAssociatedPrivateID(ctx context.Context, impus []string, impi string, ts int64, ttl time.Duration) error {
	pipe := g.client.TxPipeline()

	for _, impu := range impus {
		key := publicIDKey(impu)
		pipe.HSet(ctx, key, map[string]any{
			FieldPrefixAssocPrivateID + impi: "1",
			FieldTimestamp:                   fmt.Sprintf("%d", ts),
		})
		expire(ctx, pipe, key, ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return classify("PutAssociatedPrivateID", KeyPrefixPublicID, err)
	}
	return nil
}

// PutAssociatedPublicID は秘密識別子の行へ公開識別子の関連を追記する。
func (g *gateway) PutAssociatedPublicID(ctx context.Context, impi, impu string, ts int64, ttl time.Duration) error {
	key := privateIDKey(impi)
	pipe := g.client.TxPipeline()

	pipe.HSet(ctx, key, map[string]any{
		FieldPrefixAssocPublicID + impu: "1",
		FieldTimestamp:                  fmt.Sprintf("%d", ts),
	})
	expire(ctx, pipe, key, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return classify("PutAssociatedPublicID", key, err)
	}
	return nil
}

// DeletePublicIDs は公開識別子の行を削除し、秘密識別子側の関連も取り除く。
// 削除はタイムスタンプ順ではなく到着順に適用される。
func (g *gateway) DeletePublicIDs(ctx context.Context, impus, impis []string, ts int64) error {
	pipe := g.client.TxPipeline()

	for _, impu := range impus {
		pipe.Del(ctx, publicIDKey(impu))
	}
	for _, impi := range impis {
		fields := make([]string, 0, len(impus))
		for _, impu := range impus {
			fields = append(fields, FieldPrefixAssocPublicID+impu)
		}
		if len(fields) > 0 {
			pipe.HDel(ctx, privateIDKey(impi), fields...)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return classify("DeletePublicIDs", KeyPrefixPublicID, err)
	}
	return nil
}

// expire はTTLに応じて行の有効期限を設定する。0は無期限。
func expire(ctx context.Context, pipe redis.Pipeliner, key string, ttl time.Duration) {
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	} else {
		pipe.Persist(ctx, key)
	}
}

// classify はバックエンドのエラーをタクソノミーへ正規化する。
func classify(op, key string, err error) error {
	switch {
	case errors.Is(err, redis.Nil):
		return apperr.NewCacheError(op, key, apperr.ErrNotFound)
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.NewCacheError(op, key, fmt.Errorf("%w: %v", apperr.ErrTimeout, err))
	case isConnectionError(err):
		return apperr.NewCacheError(op, key, fmt.Errorf("%w: %v", apperr.ErrBackendUnavailable, err))
	default:
		return apperr.NewCacheError(op, key, fmt.Errorf("%w: %v", apperr.ErrBackendError, err))
	}
}
