package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/config"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/hss/mocks"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/profile"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/store"
	"github.com/redis/go-redis/v9"
	"go.uber.org/mock/gomock"
)

// テスト用識別子
const (
	testIMPI = "i@d"
	testIMPU = "sip:u@d"
)

// testProfileXML はテスト用の加入プロファイル（公開識別子は sip:u@d のみ）。
const testProfileXML = `<IMSSubscription><PrivateID>i@d</PrivateID>` +
	`<ServiceProfile><PublicIdentity><Identity>sip:u@d</Identity></PublicIdentity>` +
	`</ServiceProfile></IMSSubscription>`

const testReregTime = 30 * time.Minute

func testConfig() *config.Config {
	return &config.Config{
		HSSConfigured:         true,
		HSSReregistrationTime: testReregTime,
		SchemeDigest:          "SIP Digest",
		SchemeAKA:             "Digest-AKAv1-MD5",
		SchemeUnknown:         "Unknown",
		ServerName:            "sip:scscf.example.com:5054",
		DestRealm:             "example.com",
		LogMaskIdentity:       true,
	}
}

// testEnv はオーケストレーターのテスト一式を保持する。
type testEnv struct {
	orc   *Orchestrator
	cache store.Gateway
	mr    *miniredis.Miniredis
	hss   *mocks.MockGateway
}

func newTestEnv(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	cache := store.NewGateway(client)

	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)

	return &testEnv{
		orc:   New(cfg, cache, gw),
		cache: cache,
		mr:    mr,
		hss:   gw,
	}
}

// seedSubscription はレコードをキャッシュへ投入する。
func (e *testEnv) seedSubscription(t *testing.T, state profile.RegistrationState, ttl time.Duration, impis ...string) {
	t.Helper()

	err := e.cache.PutSubscription(context.Background(), &store.PutSubscriptionParams{
		PublicIDs:  []string{testIMPU},
		Profile:    testProfileXML,
		State:      state,
		WithState:  true,
		PrivateIDs: impis,
		Timestamp:  time.Now().UnixMicro(),
		TTL:        ttl,
	})
	if err != nil {
		t.Fatalf("seed subscription failed: %v", err)
	}
}

// getSubscription はキャッシュレコードを読み出す。
func (e *testEnv) getSubscription(t *testing.T) *store.Subscription {
	t.Helper()
	sub, err := e.cache.GetSubscription(context.Background(), testIMPU)
	if err != nil {
		t.Fatalf("get subscription failed: %v", err)
	}
	return sub
}
