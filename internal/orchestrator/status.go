package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/oyaguma3/ims-hss-frontend-poc/internal/hss"
	"github.com/oyaguma3/ims-hss-frontend-poc/pkg/apperr"
)

// RegistrationStatusInput は登録可否問い合わせへの入力を表す。
type RegistrationStatusInput struct {
	PrivateID      string
	PublicID       string
	VisitedNetwork string
	AuthType       string // クエリのauth-type値（REG / DEREG / CAPAB）
}

// LocationInput はS-CSCF問い合わせへの入力を表す。
type LocationInput struct {
	PublicID    string
	Originating bool
	AuthType    string
}

// serverNameJSON はS-CSCF名のみの応答ボディ。
type serverNameJSON struct {
	ResultCode int32  `json:"result-code"`
	SCSCF      string `json:"scscf"`
}

// capabilitiesJSON はS-CSCF能力を含む応答ボディ。能力の配列は空でも出力する。
type capabilitiesJSON struct {
	ResultCode int32    `json:"result-code"`
	SCSCF      string   `json:"scscf,omitempty"`
	Mandatory  []uint32 `json:"mandatory-capabilities"`
	Optional   []uint32 `json:"optional-capabilities"`
}

// RegistrationStatus は /impi/<id>/registration-status 要求を処理する（UAR/UAA）。
func (o *Orchestrator) RegistrationStatus(ctx context.Context, in *RegistrationStatusInput) *Reply {
	if !o.cfg.HSSConfigured {
		// HSSが無い場合、バックエンドに問い合わせず設定済みのS-CSCFを返す
		return scscfReply(hss.ResultSuccess, o.cfg.ServerName)
	}

	visited := in.VisitedNetwork
	if visited == "" {
		visited = o.cfg.DestRealm
	}

	uaa, err := o.hss.UserAuthorization(ctx, &hss.UARequest{
		PrivateID:      in.PrivateID,
		PublicID:       in.PublicID,
		VisitedNetwork: visited,
		AuthType:       hss.ParseAuthorizationType(in.AuthType),
	})
	if err != nil {
		return replyStatus(hssStatus(err))
	}

	rc, exp := uaa.ResultCode, uaa.ExperimentalResultCode
	switch {
	case rc == hss.ResultSuccess ||
		exp == hss.ExpResultFirstRegistration ||
		exp == hss.ExpResultSubsequentRegistration:
		code := rc
		if code == 0 {
			code = exp
		}
		return assignmentReply(code, uaa.ServerName, uaa.Capabilities)

	case exp == hss.ExpResultUserUnknown || exp == hss.ExpResultIdentitiesDontMatch:
		slog.Info("user unknown or identity mismatch",
			"event_id", "UAR_REJECT",
			o.ids.WithIMPI(in.PrivateID),
			"experimental_result_code", exp,
		)
		return replyStatus(http.StatusNotFound)

	case rc == hss.ResultAuthorizationRejected || exp == hss.ExpResultRoamingNotAllowed:
		slog.Info("authorization rejected",
			"event_id", "UAR_FORBIDDEN",
			o.ids.WithIMPI(in.PrivateID),
			"result_code", rc,
			"experimental_result_code", exp,
		)
		return replyStatus(http.StatusForbidden)

	case rc == hss.ResultTooBusy:
		return replyStatus(http.StatusGatewayTimeout)

	case rc == hss.ResultUnableToDeliver:
		return replyStatus(http.StatusServiceUnavailable)

	default:
		slog.Warn("unexpected user-authorization result",
			"event_id", "UAR_UNEXPECTED",
			"result_code", rc,
			"experimental_result_code", exp,
		)
		return replyStatus(http.StatusInternalServerError)
	}
}

// Location は /impu/<pub>/location 要求を処理する（LIR/LIA）。
func (o *Orchestrator) Location(ctx context.Context, in *LocationInput) *Reply {
	if !o.cfg.HSSConfigured {
		return o.locationFromCache(ctx, in)
	}

	lia, err := o.hss.LocationInfo(ctx, &hss.LIRequest{
		PublicID:    in.PublicID,
		Originating: in.Originating,
		AuthType:    hss.ParseAuthorizationType(in.AuthType),
	})
	if err != nil {
		return replyStatus(hssStatus(err))
	}

	rc, exp := lia.ResultCode, lia.ExperimentalResultCode
	switch {
	case rc == hss.ResultSuccess || exp == hss.ExpResultUnregisteredService:
		code := rc
		if code == 0 {
			code = exp
		}
		// Server-Nameを信用するのはベースの成功コードの場合のみ
		name := ""
		if rc == hss.ResultSuccess {
			name = lia.ServerName
		}
		return assignmentReply(code, name, lia.Capabilities)

	case exp == hss.ExpResultUserUnknown:
		slog.Info("location query for unknown user",
			"event_id", "LIR_REJECT",
			o.ids.WithIMPU(in.PublicID),
		)
		return replyStatus(http.StatusNotFound)

	case rc == hss.ResultTooBusy:
		return replyStatus(http.StatusGatewayTimeout)

	case rc == hss.ResultUnableToDeliver:
		return replyStatus(http.StatusServiceUnavailable)

	default:
		slog.Warn("unexpected location-info result",
			"event_id", "LIR_UNEXPECTED",
			"result_code", rc,
			"experimental_result_code", exp,
		)
		return replyStatus(http.StatusInternalServerError)
	}
}

// locationFromCache はHSSの無い構成でキャッシュから応答を合成する。
func (o *Orchestrator) locationFromCache(ctx context.Context, in *LocationInput) *Reply {
	sub, err := o.cache.GetSubscription(ctx, in.PublicID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return replyStatus(http.StatusNotFound)
		}
		return replyStatus(cacheStatus(err))
	}
	if sub.Profile == "" {
		return replyStatus(http.StatusNotFound)
	}
	return scscfReply(hss.ResultSuccess, o.cfg.ServerName)
}

// scscfReply はS-CSCF名のみの応答を生成する。
func scscfReply(code int32, name string) *Reply {
	body, err := json.Marshal(serverNameJSON{ResultCode: code, SCSCF: name})
	if err != nil {
		return replyStatus(http.StatusInternalServerError)
	}
	return replyJSON(http.StatusOK, body)
}

// assignmentReply は成功したUAA/LIAをHTTP応答に整形する。
// HSSがServer-Nameを返した場合はそれを、返さない場合は能力を返す。
func assignmentReply(code int32, serverName string, caps *hss.ServerCapabilities) *Reply {
	if serverName != "" {
		return scscfReply(code, serverName)
	}

	out := capabilitiesJSON{
		ResultCode: code,
		Mandatory:  []uint32{},
		Optional:   []uint32{},
	}
	if caps != nil {
		out.SCSCF = caps.ServerName
		if caps.Mandatory != nil {
			out.Mandatory = caps.Mandatory
		}
		if caps.Optional != nil {
			out.Optional = caps.Optional
		}
	}

	body, err := json.Marshal(out)
	if err != nil {
		return replyStatus(http.StatusInternalServerError)
	}
	return replyJSON(http.StatusOK, body)
}
