package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/oyaguma3/ims-hss-frontend-poc/internal/hss"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/profile"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/store"
	"github.com/oyaguma3/ims-hss-frontend-poc/pkg/apperr"
)

// RegDataInput は登録データ要求への入力を表す。
type RegDataInput struct {
	PublicID   string
	PrivateID  string
	IsGet      bool
	Type       RequestType
	ServerName string // ボディで指定されたS-CSCF名。空なら設定値を使う
	NoCache    bool   // Cache-control: no-cache によるキャッシュ応答の禁止
}

// regDataTask は1つの登録データ要求の状態を保持する。
// タスク値は要求の処理中その要求だけが所有し、応答確定とともに破棄される。
type regDataTask struct {
	o   *Orchestrator
	in  *RegDataInput
	raw bool // 応答をラップせず生のプロファイルで返す（非推奨エンドポイント）

	impi     string
	xml      string
	oldState profile.RegistrationState
	newState profile.RegistrationState
	assoc    []string
}

// RegData は /impu/<pub>/reg-data 要求を処理する。
func (o *Orchestrator) RegData(ctx context.Context, in *RegDataInput) *Reply {
	t := &regDataTask{o: o, in: in}
	return t.run(ctx)
}

// Subscription は非推奨の /impu/<pub> 要求を処理する。
// 秘密識別子の有無で種別を導出し、生のプロファイルで応答する。
func (o *Orchestrator) Subscription(ctx context.Context, impu, impi string) *Reply {
	in := &RegDataInput{PublicID: impu, PrivateID: impi}
	if impi == "" {
		in.Type = TypeCall
	} else {
		in.Type = TypeReg
	}
	t := &regDataTask{o: o, in: in, raw: true}
	return t.run(ctx)
}

// run は状態機械を駆動する。必ずキャッシュ読み出しから始める。
// 登録解除でも既存の秘密識別子とプロファイルが必要になるため、種別に関わらず読む。
func (t *regDataTask) run(ctx context.Context) *Reply {
	sub, err := t.o.cache.GetSubscription(ctx, t.in.PublicID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			slog.Error("subscription cache query failed",
				"event_id", "REG_DATA_CACHE_ERR",
				t.o.ids.WithIMPU(t.in.PublicID),
				"error", err.Error(),
			)
			return replyStatus(cacheStatus(err))
		}
		sub = &store.Subscription{State: profile.StateNotRegistered}
	}

	t.xml = sub.Profile
	t.oldState = sub.State
	t.newState = sub.State
	t.assoc = sub.AssociatedPrivateIDs

	// GETは状態を変えない。キャッシュの内容をそのまま返す
	if t.in.IsGet {
		return t.reply(t.oldState)
	}

	// 秘密識別子が要求に無ければプロファイルのヒントから補う。
	// 指定されていれば既知のバインディングかどうかを調べる
	newBinding := false
	t.impi = t.in.PrivateID
	if t.impi == "" {
		t.impi = profile.PrivateIDHint(t.xml)
	} else if t.xml != "" && !contains(t.assoc, t.impi) {
		newBinding = true
	}

	if t.o.cfg.HSSConfigured {
		return t.runWithHSS(ctx, sub, newBinding)
	}
	return t.runWithoutHSS(ctx)
}

// runWithHSS はHSSが構成されている場合の状態遷移を処理する。
func (t *regDataTask) runWithHSS(ctx context.Context, sub *store.Subscription, newBinding bool) *Reply {
	// 新しいバインディングは先にキャッシュへ関連を書き込む。応答はこの書き込みを待たない
	if newBinding {
		slog.Debug("subscriber registering with new binding",
			t.o.ids.WithIMPI(t.impi),
			t.o.ids.WithIMPU(t.in.PublicID),
		)
		publicIDs := profile.PublicIDs(t.xml)
		impi := t.impi
		t.o.async("CACHE_PUT_ASSOC_IMPI", func(ctx context.Context) error {
			return t.o.cache.PutAssociatedPrivateID(ctx, publicIDs, impi,
				t.o.timestamp(), t.o.cfg.RecordTTL())
		})
	}

	switch {
	case t.in.Type == TypeReg:
		if t.oldState == profile.StateRegistered && !newBinding {
			t.newState = profile.StateRegistered

			// レコードのTTLはSAA受信のたびに更新される。残TTLが再登録間隔を
			// 下回るまではHSSに通知せずキャッシュから応答できる
			if sub.TTL >= t.o.cfg.HSSReregistrationTime && !t.in.NoCache {
				return t.reply(t.newState)
			}
			return t.serverAssignment(ctx, hss.AssignmentReRegistration)
		}
		t.newState = profile.StateRegistered
		return t.serverAssignment(ctx, hss.AssignmentRegistration)

	case t.in.Type == TypeCall:
		if t.oldState == profile.StateNotRegistered {
			// 未知の加入者への着信。未登録サービスのために加入データを取得する
			t.newState = profile.StateUnregistered
			return t.serverAssignment(ctx, hss.AssignmentUnregisteredUser)
		}
		return t.reply(t.newState)

	case t.in.Type.IsDeregistration():
		if t.oldState != profile.StateRegistered {
			// 未登録の加入者への登録解除はエラー。解除ループの抑止
			slog.Info("rejecting deregistration for unregistered subscriber",
				"event_id", "DEREG_NOT_REG",
				t.o.ids.WithIMPU(t.in.PublicID),
			)
			return replyStatus(http.StatusBadRequest)
		}
		t.newState = profile.StateNotRegistered
		return t.serverAssignment(ctx, t.in.Type.AssignmentType())

	case t.in.Type.IsAuthFailure():
		// 認証失敗は状態を変えない。Auth-Pendingフラグ解除のためHSSへは通知する
		return t.serverAssignment(ctx, t.in.Type.AssignmentType())

	default:
		return replyStatus(http.StatusBadRequest)
	}
}

// runWithoutHSS はHSSが構成されていない場合の状態遷移を処理する。
// キャッシュがマスターであり、レコードは期限切れしない。
func (t *regDataTask) runWithoutHSS(ctx context.Context) *Reply {
	switch {
	case t.in.Type == TypeReg:
		switch t.oldState {
		case profile.StateRegistered:
			t.newState = profile.StateRegistered
			return t.reply(t.newState)
		case profile.StateUnregistered:
			t.newState = profile.StateRegistered
			if err := t.putSubscription(ctx); err != nil {
				return replyStatus(cacheStatus(err))
			}
			return t.reply(t.newState)
		default:
			// ローカルに提供されていない加入者
			return replyStatus(http.StatusNotFound)
		}

	case t.in.Type == TypeCall:
		if t.oldState == profile.StateNotRegistered {
			return replyStatus(http.StatusNotFound)
		}
		return t.reply(t.newState)

	case t.in.Type.IsDeregistration():
		if t.oldState != profile.StateRegistered {
			return replyStatus(http.StatusBadRequest)
		}
		// データは他に保存先が無いため、未登録状態に移して保持する
		t.newState = profile.StateUnregistered
		if err := t.putSubscription(ctx); err != nil {
			return replyStatus(cacheStatus(err))
		}
		return t.reply(t.newState)

	case t.in.Type.IsAuthFailure():
		return replyStatus(http.StatusOK)

	default:
		return replyStatus(http.StatusBadRequest)
	}
}

// serverAssignment はSAR交換を行い、応答に応じてキャッシュを更新する。
func (t *regDataTask) serverAssignment(ctx context.Context, at hss.ServerAssignmentType) *Reply {
	saa, err := t.o.hss.ServerAssignment(ctx, &hss.SARequest{
		PrivateID:  t.impi,
		PublicID:   t.in.PublicID,
		ServerName: t.serverName(),
		Type:       at,
	})
	if err != nil {
		slog.Error("server-assignment failed",
			"event_id", "SAR_ERR",
			t.o.ids.WithIMPU(t.in.PublicID),
			"assignment_type", int32(at),
			"error", err.Error(),
		)
		return replyStatus(hssStatus(err))
	}

	status := http.StatusOK
	switch saa.ResultCode {
	case hss.ResultSuccess:
	case hss.ResultUnableToDeliver:
		status = http.StatusServiceUnavailable
	case hss.ResultUserUnknown:
		slog.Info("server-assignment rejected",
			"event_id", "SAR_REJECT",
			t.o.ids.WithIMPU(t.in.PublicID),
			"result_code", saa.ResultCode,
		)
		status = http.StatusNotFound
	default:
		slog.Warn("unexpected server-assignment result",
			"event_id", "SAR_UNEXPECTED",
			"result_code", saa.ResultCode,
			"experimental_result_code", saa.ExperimentalResultCode,
		)
		status = http.StatusInternalServerError
	}

	dereg := t.in.Type.IsDeregistration()

	// 割り当てに成功した場合はHSSのUser-Dataでキャッシュを更新する。
	// 登録解除・認証失敗では更新しない
	if saa.ResultCode == hss.ResultSuccess && !dereg && !t.in.Type.IsAuthFailure() {
		t.xml = saa.UserData
		if err := t.putSubscription(ctx); err != nil {
			slog.Error("failed to cache registration data",
				"event_id", "REG_DATA_CACHE_PUT_ERR",
				t.o.ids.WithIMPU(t.in.PublicID),
				"error", err.Error(),
			)
			return replyStatus(cacheStatus(err))
		}
		return t.reply(t.newState)
	}

	// 登録解除はHSSの結果に関わらずローカルのレコードを削除する。
	// SIPエッジにバインディングが無い事実を反映するため
	if dereg {
		if s := t.deleteSubscription(ctx); s != http.StatusOK && status == http.StatusOK {
			status = s
		}
	}

	if status != http.StatusOK {
		return replyStatus(status)
	}
	return t.reply(t.newState)
}

// putSubscription は暗黙登録セット全体へレコードを書き込む。応答はこれをブロックする。
func (t *regDataTask) putSubscription(ctx context.Context) error {
	publicIDs := profile.PublicIDs(t.xml)
	if len(publicIDs) == 0 {
		// キャッシュできるプロファイルが無い。そのまま応答する
		return nil
	}

	// 未知の加入者を未登録サービスに移す書き込みは登録状態カラムを省略する。
	// 分断時に他サイトの登録書き込みを上書きしないため
	withState := !(t.oldState == profile.StateNotRegistered &&
		t.newState == profile.StateUnregistered)

	var privates []string
	if t.o.cfg.HSSConfigured {
		privates = t.associatedPrivateIDs()
	}

	return t.o.cache.PutSubscription(ctx, &store.PutSubscriptionParams{
		PublicIDs:  publicIDs,
		Profile:    t.xml,
		State:      t.newState,
		WithState:  withState,
		PrivateIDs: privates,
		Timestamp:  t.o.timestamp(),
		TTL:        t.o.cfg.RecordTTL(),
	})
}

// deleteSubscription は暗黙登録セットのレコードと関連を削除する。
// 見つからない場合は正常扱い。戻り値は削除結果のHTTPステータス。
func (t *regDataTask) deleteSubscription(ctx context.Context) int {
	publicIDs := profile.PublicIDs(t.xml)
	if len(publicIDs) == 0 {
		return http.StatusOK
	}

	err := t.o.cache.DeletePublicIDs(ctx, publicIDs, t.associatedPrivateIDs(), t.o.timestamp())
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		slog.Error("failed to delete registration data",
			"event_id", "REG_DATA_CACHE_DEL_ERR",
			t.o.ids.WithIMPU(t.in.PublicID),
			"error", err.Error(),
		)
		return cacheStatus(err)
	}
	return http.StatusOK
}

// associatedPrivateIDs は要求とプロファイルに由来する秘密識別子を順序を保って集める。
func (t *regDataTask) associatedPrivateIDs() []string {
	var ids []string
	if t.impi != "" {
		ids = append(ids, t.impi)
	}
	if hint := profile.PrivateIDHint(t.xml); hint != "" && hint != t.impi {
		ids = append(ids, hint)
	}
	return ids
}

// serverName はSARに載せるS-CSCF名を返す。ボディの指定が設定値より優先される。
func (t *regDataTask) serverName() string {
	if t.in.ServerName != "" {
		return t.in.ServerName
	}
	return t.o.cfg.ServerName
}

// reply は確定した状態で応答を生成する。
func (t *regDataTask) reply(state profile.RegistrationState) *Reply {
	if t.raw {
		if t.xml == "" {
			return replyStatus(http.StatusNotFound)
		}
		return replyXML(http.StatusOK, t.xml)
	}
	return replyXML(http.StatusOK, profile.Wrap(state, t.xml))
}

// contains はスライスに値が含まれるかどうかを返す。
func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
