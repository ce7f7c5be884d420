package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/config"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/orchestrator"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/store"
	"github.com/redis/go-redis/v9"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter はHSS無し構成のハンドラーとキャッシュ一式を組み立てる。
func newTestRouter(t *testing.T) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()

	cfg := &config.Config{
		HSSConfigured:   false,
		QueryCacheAV:    true,
		SchemeDigest:    "SIP Digest",
		SchemeAKA:       "Digest-AKAv1-MD5",
		SchemeUnknown:   "Unknown",
		ServerName:      "sip:scscf.example.com:5054",
		LogMaskIdentity: true,
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	orc := orchestrator.New(cfg, store.NewGateway(client), nil)
	h := New(orc, cfg)

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.GET("/ping", h.HandlePing)
	engine.GET("/impi/:impi/digest", h.HandleDigest)
	engine.GET("/impi/:impi/av", h.HandleAV)
	engine.GET("/impu/:impu/reg-data", h.HandleRegDataGet)
	engine.PUT("/impu/:impu/reg-data", h.HandleRegDataPut)
	engine.GET("/impu/:impu", h.HandleSubscription)

	return engine, mr
}

func doRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHandlePing(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doRequest(engine, http.MethodGet, "/ping", "")
	if w.Code != http.StatusOK {
		t.Errorf("Code = %d, want 200", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Body = %q, want OK", w.Body.String())
	}
}

func TestHandleDigestCached(t *testing.T) {
	engine, mr := newTestRouter(t)
	mr.HSet("impi:i@d", "digest_ha1", "abc")
	mr.HSet("impi:i@d", "digest_realm", "r")
	mr.HSet("impi:i@d", "digest_qop", "")
	mr.HSet("impi:i@d", "public_id:sip:u@d", "1")

	w := doRequest(engine, http.MethodGet, "/impi/i@d/digest?public_id=sip:u@d", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Code = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
	if got := w.Body.String(); got != `{"digest_HA1":"abc"}` {
		t.Errorf("Body = %s", got)
	}
}

func TestHandleDigestMiss(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doRequest(engine, http.MethodGet, "/impi/i@d/digest?public_id=sip:u@d", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Code = %d, want 404", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/problem+json") {
		t.Errorf("Content-Type = %q, want problem+json", ct)
	}
}

func TestHandleAVInvalidAutn(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doRequest(engine, http.MethodGet, "/impi/i@d/av?impu=sip:u@d&autn=%21%21%21", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Code = %d, want 400", w.Code)
	}
}

func TestHandleRegDataGetUnknown(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doRequest(engine, http.MethodGet, "/impu/sip:u@d/reg-data", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Code = %d, want 200", w.Code)
	}
	want := "<ClearwaterRegData><RegistrationState>NOT_REGISTERED</RegistrationState></ClearwaterRegData>"
	if w.Body.String() != want {
		t.Errorf("Body = %s", w.Body.String())
	}
}

func TestHandleRegDataPutBadBody(t *testing.T) {
	engine, _ := newTestRouter(t)

	tests := []string{
		``,
		`not json`,
		`{"reqtype":"bogus"}`,
		`{"other":1}`,
	}
	for _, body := range tests {
		w := doRequest(engine, http.MethodPut, "/impu/sip:u@d/reg-data", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: Code = %d, want 400", body, w.Code)
		}
	}
}

func TestHandleRegDataPutCallUnknown(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doRequest(engine, http.MethodPut, "/impu/sip:u@d/reg-data", `{"reqtype":"call"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("Code = %d, want 404", w.Code)
	}
}

func TestHandleRegDataMethodNotAllowed(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doRequest(engine, http.MethodDelete, "/impu/sip:u@d/reg-data", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Code = %d, want 405", w.Code)
	}
}

func TestHandleSubscriptionRaw(t *testing.T) {
	engine, mr := newTestRouter(t)

	profileXML := `<IMSSubscription><PrivateID>i@d</PrivateID>` +
		`<ServiceProfile><PublicIdentity><Identity>sip:u@d</Identity></PublicIdentity>` +
		`</ServiceProfile></IMSSubscription>`
	mr.HSet("impu:sip:u@d", "profile", profileXML)
	mr.HSet("impu:sip:u@d", "is_registered", "UNREGISTERED")
	mr.SetTTL("impu:sip:u@d", time.Hour)

	w := doRequest(engine, http.MethodGet, "/impu/sip:u@d", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Code = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
	if w.Body.String() != profileXML {
		t.Errorf("Body = %s, want raw profile", w.Body.String())
	}
}
