// Package orchestrator はHTTP要求ごとの状態機械を提供する。
// キャッシュとHSSへの問い合わせ順序・登録状態遷移・応答整形を担当する。
package orchestrator

import (
	"encoding/json"
	"fmt"

	"github.com/oyaguma3/ims-hss-frontend-poc/internal/hss"
	"github.com/oyaguma3/ims-hss-frontend-poc/pkg/apperr"
)

// RequestType は登録データ要求の種別を表す。
type RequestType int

const (
	TypeUnknown RequestType = iota
	TypeReg
	TypeCall
	TypeDeregUser
	TypeDeregAdmin
	TypeDeregTimeout
	TypeDeregAuthFail
	TypeDeregAuthTimeout
)

// reqTypeNames はリクエストボディ上の種別名。
var reqTypeNames = map[string]RequestType{
	"reg":                TypeReg,
	"call":               TypeCall,
	"dereg-user":         TypeDeregUser,
	"dereg-admin":        TypeDeregAdmin,
	"dereg-timeout":      TypeDeregTimeout,
	"dereg-auth-failed":  TypeDeregAuthFail,
	"dereg-auth-timeout": TypeDeregAuthTimeout,
}

// String は種別名を返す。
func (t RequestType) String() string {
	for name, v := range reqTypeNames {
		if v == t {
			return name
		}
	}
	return "unknown"
}

// IsDeregistration は登録解除要求かどうかを返す。認証失敗系は含まない。
func (t RequestType) IsDeregistration() bool {
	switch t {
	case TypeDeregUser, TypeDeregAdmin, TypeDeregTimeout:
		return true
	default:
		return false
	}
}

// IsAuthFailure は認証失敗・認証タイムアウト要求かどうかを返す。
func (t RequestType) IsAuthFailure() bool {
	return t == TypeDeregAuthFail || t == TypeDeregAuthTimeout
}

// AssignmentType は要求種別に対応するServer-Assignment-Typeを返す。
// REGとCALLは文脈（初回か否か）で変わるため呼び出し側が選択する。
func (t RequestType) AssignmentType() hss.ServerAssignmentType {
	switch t {
	case TypeDeregUser:
		return hss.AssignmentUserDeregistration
	case TypeDeregAdmin:
		return hss.AssignmentAdministrativeDeregistration
	case TypeDeregTimeout:
		return hss.AssignmentTimeoutDeregistration
	case TypeDeregAuthFail:
		return hss.AssignmentAuthenticationFailure
	case TypeDeregAuthTimeout:
		return hss.AssignmentAuthenticationTimeout
	default:
		return hss.AssignmentNoAssignment
	}
}

// RegDataBody はPUT /impu/<pub>/reg-data のボディを表す。
type RegDataBody struct {
	Type       RequestType
	ServerName string // 任意のS-CSCF名の上書き
}

// regDataBodyJSON はボディ解析用の構造体。
type regDataBodyJSON struct {
	ReqType    string `json:"reqtype"`
	ServerName string `json:"server_name"`
}

// ParseRegDataBody はリクエストボディを解析する。
// reqtype要素が無い・未知の値の場合は apperr.ErrInvalidInput を返す。
func ParseRegDataBody(body []byte) (*RegDataBody, error) {
	var raw regDataBodyJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
	}

	t, ok := reqTypeNames[raw.ReqType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown reqtype %q", apperr.ErrInvalidInput, raw.ReqType)
	}

	return &RegDataBody{Type: t, ServerName: raw.ServerName}, nil
}
