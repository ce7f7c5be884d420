package hss

import (
	"context"

	"github.com/oyaguma3/ims-hss-frontend-poc/internal/credential"
)

// MARequest はMultimedia-Auth要求を表す。
type MARequest struct {
	PrivateID     string // User-Name
	PublicID      string // Public-Identity
	Scheme        string // 要求する認証スキームのワイヤ名
	Authorization string // SIP-Authorization（再同期情報等）。空なら省略
	ServerName    string // Server-Name
}

// MAAnswer はMultimedia-Auth応答を表す。
type MAAnswer struct {
	ResultCode int32
	Scheme     string // 応答のSIP-Authentication-Scheme
	Digest     *credential.DigestVector
	AKA        *credential.AKAVector
}

// SARequest はServer-Assignment要求を表す。
type SARequest struct {
	PrivateID  string
	PublicID   string
	ServerName string
	Type       ServerAssignmentType
}

// SAAnswer はServer-Assignment応答を表す。
type SAAnswer struct {
	ResultCode             int32
	ExperimentalResultCode int32
	UserData               string // 更新された加入プロファイル文書
}

// UARequest はUser-Authorization要求を表す。
type UARequest struct {
	PrivateID      string
	PublicID       string
	VisitedNetwork string
	AuthType       AuthorizationType
}

// ServerCapabilities はServer-Capabilities AVPの内容を表す。
type ServerCapabilities struct {
	ServerName string
	Mandatory  []uint32
	Optional   []uint32
}

// UAAnswer はUser-Authorization応答を表す。
type UAAnswer struct {
	ResultCode             int32
	ExperimentalResultCode int32
	ServerName             string
	Capabilities           *ServerCapabilities
}

// LIRequest はLocation-Info要求を表す。
type LIRequest struct {
	PublicID    string
	Originating bool // 発信側リクエストの場合にOriginating-Requestを付与
	AuthType    AuthorizationType
}

// LIAnswer はLocation-Info応答を表す。
type LIAnswer struct {
	ResultCode             int32
	ExperimentalResultCode int32
	ServerName             string
	Capabilities           *ServerCapabilities
}

// Gateway はHSSとのCx交換を定義する。
// 各交換は設定されたタイムアウトを超えると apperr.ErrTimeout を返し、
// 以降に到着した応答は破棄される。
type Gateway interface {
	// MultimediaAuth は認証ベクターを取得する（MAR/MAA）。
	MultimediaAuth(ctx context.Context, req *MARequest) (*MAAnswer, error)

	// ServerAssignment は登録バインディングを更新する（SAR/SAA）。
	ServerAssignment(ctx context.Context, req *SARequest) (*SAAnswer, error)

	// UserAuthorization は登録可否とS-CSCF割り当てを問い合わせる（UAR/UAA）。
	UserAuthorization(ctx context.Context, req *UARequest) (*UAAnswer, error)

	// LocationInfo は公開識別子を担当するS-CSCFを問い合わせる（LIR/LIA）。
	LocationInfo(ctx context.Context, req *LIRequest) (*LIAnswer, error)
}
