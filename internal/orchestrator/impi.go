package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/oyaguma3/ims-hss-frontend-poc/internal/credential"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/hss"
	"github.com/oyaguma3/ims-hss-frontend-poc/pkg/apperr"
)

// AVEndpoint は認証ベクター要求の入口を表す。
type AVEndpoint int

const (
	// EndpointDigest は /impi/<id>/digest。簡易Digestボディで応答する
	EndpointDigest AVEndpoint = iota
	// EndpointAV は /impi/<id>/av と /impi/<id>/aka。完全なボディで応答する
	EndpointAV
)

// AuthVectorInput は認証ベクター要求への入力を表す。
type AuthVectorInput struct {
	Endpoint      AVEndpoint
	PrivateID     string
	PublicID      string
	Scheme        string // 要求スキームのワイヤ名（設定値で解決済み）
	Authorization string
}

// AuthVector は認証ベクター要求を処理する。
func (o *Orchestrator) AuthVector(ctx context.Context, in *AuthVectorInput) *Reply {
	// HSSが無い構成ではキャッシュが唯一の情報源になる
	if o.cfg.QueryCacheAV || !o.cfg.HSSConfigured {
		return o.authVectorFromCache(ctx, in)
	}
	return o.authVectorFromHSS(ctx, in)
}

// authVectorFromCache はキャッシュからDigestベクターを取得して応答する。
func (o *Orchestrator) authVectorFromCache(ctx context.Context, in *AuthVectorInput) *Reply {
	av, err := o.cache.GetAuthVector(ctx, in.PrivateID, in.PublicID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			slog.Info("no cached auth vector",
				"event_id", "AV_CACHE_MISS",
				o.ids.WithIMPI(in.PrivateID),
				o.ids.WithIMPU(in.PublicID),
			)
			return replyStatus(http.StatusNotFound)
		}
		slog.Error("auth vector cache query failed",
			"event_id", "AV_CACHE_ERR",
			o.ids.WithIMPI(in.PrivateID),
			"error", err.Error(),
		)
		return replyStatus(cacheStatus(err))
	}
	return o.formatDigest(in.Endpoint, av)
}

// authVectorFromHSS はMAR交換でベクターを取得して応答する。
func (o *Orchestrator) authVectorFromHSS(ctx context.Context, in *AuthVectorInput) *Reply {
	impu := in.PublicID
	if impu == "" {
		// AKAは要求に紐づく公開識別子が必須。キャッシュの対応を使うことはできない
		if in.Scheme == o.cfg.SchemeAKA {
			slog.Info("aka requested without public identity",
				"event_id", "AV_AKA_NO_IMPU",
				o.ids.WithIMPI(in.PrivateID),
			)
			return replyStatus(http.StatusNotFound)
		}

		ids, err := o.cache.GetAssociatedPublicIDs(ctx, in.PrivateID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return replyStatus(http.StatusNotFound)
			}
			return replyStatus(cacheStatus(err))
		}
		if len(ids) == 0 {
			slog.Info("no associated public identity",
				"event_id", "AV_NO_ASSOC_IMPU",
				o.ids.WithIMPI(in.PrivateID),
			)
			return replyStatus(http.StatusNotFound)
		}
		impu = ids[0]
	}

	maa, err := o.hss.MultimediaAuth(ctx, &hss.MARequest{
		PrivateID:     in.PrivateID,
		PublicID:      impu,
		Scheme:        in.Scheme,
		Authorization: in.Authorization,
		ServerName:    o.cfg.ServerName,
	})
	if err != nil {
		return replyStatus(hssStatus(err))
	}

	switch maa.ResultCode {
	case hss.ResultSuccess:
		return o.formatMAA(in, impu, maa)
	case hss.ResultUnableToDeliver:
		return replyStatus(http.StatusServiceUnavailable)
	case hss.ResultUserUnknown:
		slog.Info("multimedia-auth rejected",
			"event_id", "AV_HSS_REJECT",
			o.ids.WithIMPI(in.PrivateID),
			"result_code", maa.ResultCode,
		)
		return replyStatus(http.StatusNotFound)
	default:
		slog.Warn("unexpected multimedia-auth result",
			"event_id", "AV_HSS_UNEXPECTED",
			"result_code", maa.ResultCode,
		)
		return replyStatus(http.StatusInternalServerError)
	}
}

// formatMAA は成功したMultimedia-Auth応答をHTTP応答に整形する。
func (o *Orchestrator) formatMAA(in *AuthVectorInput, impu string, maa *hss.MAAnswer) *Reply {
	switch {
	case maa.Scheme == o.cfg.SchemeDigest && maa.Digest != nil:
		// 秘密識別子→公開識別子の対応を機会的にキャッシュする。応答はこの書き込みを待たない
		if o.cfg.IMPUCacheTTL != 0 {
			impi := in.PrivateID
			o.async("CACHE_PUT_ASSOC_IMPU", func(ctx context.Context) error {
				return o.cache.PutAssociatedPublicID(ctx, impi, impu, o.timestamp(), o.cfg.IMPUCacheTTL)
			})
		}
		return o.formatDigest(in.Endpoint, maa.Digest)

	case maa.Scheme == o.cfg.SchemeAKA && maa.AKA != nil:
		// Digest用URLへのAKA応答はエラー
		if in.Endpoint == EndpointDigest {
			return replyStatus(http.StatusNotFound)
		}
		body, err := credential.EncodeAKA(maa.AKA)
		if err != nil {
			return replyStatus(http.StatusInternalServerError)
		}
		return replyJSON(http.StatusOK, body)

	default:
		slog.Warn("unsupported auth scheme in answer",
			"event_id", "AV_BAD_SCHEME",
			"scheme", maa.Scheme,
		)
		return replyStatus(http.StatusNotFound)
	}
}

// formatDigest はDigestベクターを入口に応じたボディで応答する。
func (o *Orchestrator) formatDigest(endpoint AVEndpoint, av *credential.DigestVector) *Reply {
	var (
		body []byte
		err  error
	)
	if endpoint == EndpointDigest {
		body, err = credential.EncodeDigestSimple(av)
	} else {
		body, err = credential.EncodeDigest(av)
	}
	if err != nil {
		return replyStatus(http.StatusInternalServerError)
	}
	return replyJSON(http.StatusOK, body)
}
