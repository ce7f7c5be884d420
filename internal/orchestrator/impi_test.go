package orchestrator

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/oyaguma3/ims-hss-frontend-poc/internal/credential"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/hss"
	"github.com/oyaguma3/ims-hss-frontend-poc/pkg/apperr"
	"go.uber.org/mock/gomock"
)

// seedAuthVector はDigest認証情報を秘密識別子の行へ投入する。
func (e *testEnv) seedAuthVector(t *testing.T, impi, ha1, realm, qop string, impus ...string) {
	t.Helper()
	key := "impi:" + impi
	e.mr.HSet(key, "digest_ha1", ha1)
	e.mr.HSet(key, "digest_realm", realm)
	e.mr.HSet(key, "digest_qop", qop)
	for _, impu := range impus {
		e.mr.HSet(key, "public_id:"+impu, "1")
	}
}

func TestAuthVectorCachedDigest(t *testing.T) {
	cfg := testConfig()
	cfg.QueryCacheAV = true
	env := newTestEnv(t, cfg)
	env.seedAuthVector(t, testIMPI, "abc", "r", "", testIMPU)

	reply := env.orc.AuthVector(context.Background(), &AuthVectorInput{
		Endpoint:  EndpointDigest,
		PrivateID: testIMPI,
		PublicID:  testIMPU,
		Scheme:    cfg.SchemeDigest,
	})

	if reply.Status != http.StatusOK {
		t.Fatalf("Status = %d, want 200", reply.Status)
	}
	if got := string(reply.Body); got != `{"digest_HA1":"abc"}` {
		t.Errorf("Body = %s", got)
	}
	// HSSへのトラフィックが無いことはMockGatewayの期待値ゼロで検証される
}

func TestAuthVectorCachedMiss(t *testing.T) {
	cfg := testConfig()
	cfg.QueryCacheAV = true
	env := newTestEnv(t, cfg)

	reply := env.orc.AuthVector(context.Background(), &AuthVectorInput{
		Endpoint:  EndpointDigest,
		PrivateID: testIMPI,
		PublicID:  testIMPU,
		Scheme:    cfg.SchemeDigest,
	})

	if reply.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", reply.Status)
	}
}

func TestAuthVectorAKAWithoutPublicID(t *testing.T) {
	cfg := testConfig()
	env := newTestEnv(t, cfg)

	reply := env.orc.AuthVector(context.Background(), &AuthVectorInput{
		Endpoint:  EndpointAV,
		PrivateID: testIMPI,
		Scheme:    cfg.SchemeAKA,
	})

	if reply.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", reply.Status)
	}
}

func TestAuthVectorMARDigest(t *testing.T) {
	cfg := testConfig()
	env := newTestEnv(t, cfg)

	env.hss.EXPECT().MultimediaAuth(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *hss.MARequest) (*hss.MAAnswer, error) {
			if req.PrivateID != testIMPI || req.PublicID != testIMPU {
				t.Errorf("MAR identities = %s/%s", req.PrivateID, req.PublicID)
			}
			if req.ServerName != cfg.ServerName {
				t.Errorf("MAR server name = %s", req.ServerName)
			}
			return &hss.MAAnswer{
				ResultCode: hss.ResultSuccess,
				Scheme:     cfg.SchemeDigest,
				Digest:     &credential.DigestVector{HA1: "xyz", Realm: "r", QOP: ""},
			}, nil
		})

	reply := env.orc.AuthVector(context.Background(), &AuthVectorInput{
		Endpoint:  EndpointAV,
		PrivateID: testIMPI,
		PublicID:  testIMPU,
		Scheme:    cfg.SchemeUnknown,
	})

	if reply.Status != http.StatusOK {
		t.Fatalf("Status = %d, want 200", reply.Status)
	}
	want := `{"digest":{"ha1":"xyz","realm":"r","qop":"auth"}}`
	if got := string(reply.Body); got != want {
		t.Errorf("Body = %s, want %s", got, want)
	}
}

func TestAuthVectorMARDigestCachesAssociation(t *testing.T) {
	cfg := testConfig()
	cfg.IMPUCacheTTL = time.Hour
	env := newTestEnv(t, cfg)

	env.hss.EXPECT().MultimediaAuth(gomock.Any(), gomock.Any()).Return(&hss.MAAnswer{
		ResultCode: hss.ResultSuccess,
		Scheme:     cfg.SchemeDigest,
		Digest:     &credential.DigestVector{HA1: "xyz", Realm: "r"},
	}, nil)

	reply := env.orc.AuthVector(context.Background(), &AuthVectorInput{
		Endpoint:  EndpointDigest,
		PrivateID: testIMPI,
		PublicID:  testIMPU,
		Scheme:    cfg.SchemeDigest,
	})
	if reply.Status != http.StatusOK {
		t.Fatalf("Status = %d, want 200", reply.Status)
	}

	// 応答後に完了する非同期書き込みを待つ
	env.orc.asyncWG.Wait()

	ids, err := env.cache.GetAssociatedPublicIDs(context.Background(), testIMPI)
	if err != nil {
		t.Fatalf("GetAssociatedPublicIDs failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != testIMPU {
		t.Errorf("associated public ids = %v, want [%s]", ids, testIMPU)
	}
}

func TestAuthVectorMARAKA(t *testing.T) {
	cfg := testConfig()
	env := newTestEnv(t, cfg)

	env.hss.EXPECT().MultimediaAuth(gomock.Any(), gomock.Any()).Return(&hss.MAAnswer{
		ResultCode: hss.ResultSuccess,
		Scheme:     cfg.SchemeAKA,
		AKA: &credential.AKAVector{
			Challenge:    []byte{0x01},
			Response:     []byte{0x02},
			CryptKey:     []byte{0x03},
			IntegrityKey: []byte{0x04},
		},
	}, nil)

	reply := env.orc.AuthVector(context.Background(), &AuthVectorInput{
		Endpoint:  EndpointAV,
		PrivateID: testIMPI,
		PublicID:  testIMPU,
		Scheme:    cfg.SchemeAKA,
	})

	if reply.Status != http.StatusOK {
		t.Fatalf("Status = %d, want 200", reply.Status)
	}
	want := `{"aka":{"challenge":"01","response":"02","cryptkey":"03","integritykey":"04"}}`
	if got := string(reply.Body); got != want {
		t.Errorf("Body = %s, want %s", got, want)
	}
}

func TestAuthVectorAKAOnDigestEndpoint(t *testing.T) {
	cfg := testConfig()
	env := newTestEnv(t, cfg)

	env.hss.EXPECT().MultimediaAuth(gomock.Any(), gomock.Any()).Return(&hss.MAAnswer{
		ResultCode: hss.ResultSuccess,
		Scheme:     cfg.SchemeAKA,
		AKA:        &credential.AKAVector{Challenge: []byte{0x01}},
	}, nil)

	reply := env.orc.AuthVector(context.Background(), &AuthVectorInput{
		Endpoint:  EndpointDigest,
		PrivateID: testIMPI,
		PublicID:  testIMPU,
		Scheme:    cfg.SchemeDigest,
	})

	if reply.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404 for AKA answer on digest URL", reply.Status)
	}
}

func TestAuthVectorPublicIDFromCache(t *testing.T) {
	cfg := testConfig()
	env := newTestEnv(t, cfg)
	env.mr.HSet("impi:"+testIMPI, "public_id:"+testIMPU, "1")

	env.hss.EXPECT().MultimediaAuth(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *hss.MARequest) (*hss.MAAnswer, error) {
			if req.PublicID != testIMPU {
				t.Errorf("MAR public id = %s, want %s", req.PublicID, testIMPU)
			}
			return &hss.MAAnswer{
				ResultCode: hss.ResultSuccess,
				Scheme:     cfg.SchemeDigest,
				Digest:     &credential.DigestVector{HA1: "xyz"},
			}, nil
		})

	reply := env.orc.AuthVector(context.Background(), &AuthVectorInput{
		Endpoint:  EndpointDigest,
		PrivateID: testIMPI,
		Scheme:    cfg.SchemeDigest,
	})

	if reply.Status != http.StatusOK {
		t.Errorf("Status = %d, want 200", reply.Status)
	}
}

func TestAuthVectorPublicIDUnknown(t *testing.T) {
	cfg := testConfig()
	env := newTestEnv(t, cfg)

	reply := env.orc.AuthVector(context.Background(), &AuthVectorInput{
		Endpoint:  EndpointDigest,
		PrivateID: testIMPI,
		Scheme:    cfg.SchemeDigest,
	})

	if reply.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", reply.Status)
	}
}

func TestAuthVectorMARErrors(t *testing.T) {
	tests := []struct {
		name       string
		answer     *hss.MAAnswer
		err        error
		wantStatus int
	}{
		{"user unknown", &hss.MAAnswer{ResultCode: hss.ResultUserUnknown}, nil, http.StatusNotFound},
		{"unable to deliver", &hss.MAAnswer{ResultCode: hss.ResultUnableToDeliver}, nil, http.StatusServiceUnavailable},
		{"unexpected code", &hss.MAAnswer{ResultCode: 4001}, nil, http.StatusInternalServerError},
		{"timeout", nil, apperr.NewHSSError("MAR", 0, apperr.ErrTimeout), http.StatusServiceUnavailable},
		{"unavailable", nil, apperr.NewHSSError("MAR", 0, apperr.ErrBackendUnavailable), http.StatusServiceUnavailable},
		{"unknown scheme", &hss.MAAnswer{ResultCode: hss.ResultSuccess, Scheme: "bogus"}, nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			env := newTestEnv(t, cfg)
			env.hss.EXPECT().MultimediaAuth(gomock.Any(), gomock.Any()).Return(tt.answer, tt.err)

			reply := env.orc.AuthVector(context.Background(), &AuthVectorInput{
				Endpoint:  EndpointAV,
				PrivateID: testIMPI,
				PublicID:  testIMPU,
				Scheme:    cfg.SchemeUnknown,
			})

			if reply.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", reply.Status, tt.wantStatus)
			}
		})
	}
}
