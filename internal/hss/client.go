package hss

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fiorix/go-diameter/v4/diam"
	"github.com/fiorix/go-diameter/v4/diam/avp"
	"github.com/fiorix/go-diameter/v4/diam/datatype"
	"github.com/fiorix/go-diameter/v4/diam/dict"
	"github.com/fiorix/go-diameter/v4/diam/sm"
	"github.com/google/uuid"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/config"
	"github.com/oyaguma3/ims-hss-frontend-poc/internal/credential"
	"github.com/oyaguma3/ims-hss-frontend-poc/pkg/apperr"
	"github.com/sony/gobreaker"
)

// Client はGatewayインターフェースのDiameter実装。
// 応答はSession-Idで相関させ、期限を過ぎて到着した応答は破棄する。
type Client struct {
	cfg  *config.Config
	conn diam.Conn
	cb   *gobreaker.CircuitBreaker

	mu      sync.Mutex
	pending map[string]chan *diam.Message
}

// NewClient はHSSへ接続し、新しいDiameterクライアントを生成する。
// CER/CEA交換が完了するまでブロックする。
func NewClient(cfg *config.Config) (*Client, error) {
	loadDict()

	c := &Client{
		cfg:     cfg,
		pending: make(map[string]chan *diam.Message),
	}

	settings := &sm.Settings{
		OriginHost:       datatype.DiameterIdentity(cfg.OriginHost),
		OriginRealm:      datatype.DiameterIdentity(cfg.OriginRealm),
		VendorID:         datatype.Unsigned32(config.DiameterVendorID),
		ProductName:      datatype.UTF8String(config.DiameterProductName),
		FirmwareRevision: 1,
	}

	mux := sm.New(settings)
	mux.HandleFunc("MAA", c.handleAnswer)
	mux.HandleFunc("SAA", c.handleAnswer)
	mux.HandleFunc("UAA", c.handleAnswer)
	mux.HandleFunc("LIA", c.handleAnswer)

	cli := &sm.Client{
		Dict:               dict.Default,
		Handler:            mux,
		MaxRetransmits:     0,
		RetransmitInterval: time.Second,
		EnableWatchdog:     true,
		WatchdogInterval:   config.DiameterWatchdogInterval,
		VendorSpecificApplicationID: []*diam.AVP{
			diam.NewAVP(avp.VendorSpecificApplicationID, avp.Mbit, 0, &diam.GroupedAVP{
				AVP: []*diam.AVP{
					diam.NewAVP(avp.AuthApplicationID, avp.Mbit, 0, datatype.Unsigned32(AppIDCx)),
					diam.NewAVP(avp.VendorID, avp.Mbit, 0, datatype.Unsigned32(VendorTGPP)),
				},
			}),
		},
	}

	conn, err := cli.DialNetwork("tcp", cfg.HSSAddr)
	if err != nil {
		return nil, fmt.Errorf("dial hss %s: %w", cfg.HSSAddr, err)
	}
	c.conn = conn

	c.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.CBName,
		MaxRequests: config.CBMaxRequests,
		Interval:    config.CBInterval,
		Timeout:     config.CBTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.CBFailureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			switch to {
			case gobreaker.StateOpen:
				slog.Warn("circuit breaker opened", "event_id", "CB_OPEN", "cb_name", name)
			case gobreaker.StateHalfOpen:
				slog.Info("circuit breaker half-open", "event_id", "CB_HALF_OPEN", "cb_name", name)
			case gobreaker.StateClosed:
				slog.Info("circuit breaker closed", "event_id", "CB_CLOSE", "cb_name", name)
			}
		},
	})

	return c, nil
}

// Close はHSSとの接続を閉じる。
func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

// MultimediaAuth は認証ベクターを取得する（MAR/MAA）。
func (c *Client) MultimediaAuth(ctx context.Context, req *MARequest) (*MAAnswer, error) {
	sid := c.newSessionID()
	m := diam.NewRequest(cmdMultimediaAuth, AppIDCx, dict.Default)
	m.NewAVP(avp.SessionID, avp.Mbit, 0, datatype.UTF8String(sid))
	c.addRoutingAVPs(m)
	m.NewAVP(avp.UserName, avp.Mbit, 0, datatype.UTF8String(req.PrivateID))
	m.NewAVP(avpPublicIdentity, avp.Mbit|avp.Vbit, VendorTGPP, datatype.UTF8String(req.PublicID))

	item := []*diam.AVP{
		diam.NewAVP(avpSIPAuthenticationScheme, avp.Mbit|avp.Vbit, VendorTGPP, datatype.UTF8String(req.Scheme)),
	}
	if req.Authorization != "" {
		item = append(item,
			diam.NewAVP(avpSIPAuthorization, avp.Mbit|avp.Vbit, VendorTGPP, datatype.OctetString(req.Authorization)))
	}
	m.NewAVP(avpSIPAuthDataItem, avp.Mbit|avp.Vbit, VendorTGPP, &diam.GroupedAVP{AVP: item})
	m.NewAVP(avpSIPNumberAuthItems, avp.Mbit|avp.Vbit, VendorTGPP, datatype.Unsigned32(1))
	m.NewAVP(avpServerName, avp.Mbit|avp.Vbit, VendorTGPP, datatype.UTF8String(req.ServerName))

	ans, err := c.exchange(ctx, "MAR", m, sid)
	if err != nil {
		return nil, err
	}
	return parseMAA(ans), nil
}

// ServerAssignment は登録バインディングを更新する（SAR/SAA）。
func (c *Client) ServerAssignment(ctx context.Context, req *SARequest) (*SAAnswer, error) {
	sid := c.newSessionID()
	m := diam.NewRequest(cmdServerAssignment, AppIDCx, dict.Default)
	m.NewAVP(avp.SessionID, avp.Mbit, 0, datatype.UTF8String(sid))
	c.addRoutingAVPs(m)
	if req.PrivateID != "" {
		m.NewAVP(avp.UserName, avp.Mbit, 0, datatype.UTF8String(req.PrivateID))
	}
	m.NewAVP(avpPublicIdentity, avp.Mbit|avp.Vbit, VendorTGPP, datatype.UTF8String(req.PublicID))
	m.NewAVP(avpServerName, avp.Mbit|avp.Vbit, VendorTGPP, datatype.UTF8String(req.ServerName))
	m.NewAVP(avpServerAssignmentType, avp.Mbit|avp.Vbit, VendorTGPP, datatype.Enumerated(req.Type))
	m.NewAVP(avpUserDataAlreadyAvailable, avp.Mbit|avp.Vbit, VendorTGPP, datatype.Enumerated(0))

	ans, err := c.exchange(ctx, "SAR", m, sid)
	if err != nil {
		return nil, err
	}
	return &SAAnswer{
		ResultCode:             resultCode(ans),
		ExperimentalResultCode: experimentalResultCode(ans),
		UserData:               findString(ans, avpUserData, VendorTGPP),
	}, nil
}

// UserAuthorization は登録可否とS-CSCF割り当てを問い合わせる（UAR/UAA）。
func (c *Client) UserAuthorization(ctx context.Context, req *UARequest) (*UAAnswer, error) {
	sid := c.newSessionID()
	m := diam.NewRequest(cmdUserAuthorization, AppIDCx, dict.Default)
	m.NewAVP(avp.SessionID, avp.Mbit, 0, datatype.UTF8String(sid))
	c.addRoutingAVPs(m)
	m.NewAVP(avp.UserName, avp.Mbit, 0, datatype.UTF8String(req.PrivateID))
	m.NewAVP(avpPublicIdentity, avp.Mbit|avp.Vbit, VendorTGPP, datatype.UTF8String(req.PublicID))
	m.NewAVP(avpVisitedNetworkIdentifier, avp.Mbit|avp.Vbit, VendorTGPP, datatype.OctetString(req.VisitedNetwork))
	m.NewAVP(avpUserAuthorizationType, avp.Mbit|avp.Vbit, VendorTGPP, datatype.Enumerated(req.AuthType))

	ans, err := c.exchange(ctx, "UAR", m, sid)
	if err != nil {
		return nil, err
	}
	return &UAAnswer{
		ResultCode:             resultCode(ans),
		ExperimentalResultCode: experimentalResultCode(ans),
		ServerName:             findString(ans, avpServerName, VendorTGPP),
		Capabilities:           parseServerCapabilities(ans),
	}, nil
}

// LocationInfo は公開識別子を担当するS-CSCFを問い合わせる（LIR/LIA）。
func (c *Client) LocationInfo(ctx context.Context, req *LIRequest) (*LIAnswer, error) {
	sid := c.newSessionID()
	m := diam.NewRequest(cmdLocationInfo, AppIDCx, dict.Default)
	m.NewAVP(avp.SessionID, avp.Mbit, 0, datatype.UTF8String(sid))
	c.addRoutingAVPs(m)
	if req.Originating {
		m.NewAVP(avpOriginatingRequest, avp.Mbit|avp.Vbit, VendorTGPP, datatype.Enumerated(0))
	}
	m.NewAVP(avpPublicIdentity, avp.Mbit|avp.Vbit, VendorTGPP, datatype.UTF8String(req.PublicID))
	if req.AuthType == AuthTypeCapabilities {
		m.NewAVP(avpUserAuthorizationType, avp.Mbit|avp.Vbit, VendorTGPP, datatype.Enumerated(req.AuthType))
	}

	ans, err := c.exchange(ctx, "LIR", m, sid)
	if err != nil {
		return nil, err
	}
	return &LIAnswer{
		ResultCode:             resultCode(ans),
		ExperimentalResultCode: experimentalResultCode(ans),
		ServerName:             findString(ans, avpServerName, VendorTGPP),
		Capabilities:           parseServerCapabilities(ans),
	}, nil
}

// addRoutingAVPs は全Cx要求に共通するAVPを付与する。
func (c *Client) addRoutingAVPs(m *diam.Message) {
	m.NewAVP(avp.VendorSpecificApplicationID, avp.Mbit, 0, &diam.GroupedAVP{
		AVP: []*diam.AVP{
			diam.NewAVP(avp.AuthApplicationID, avp.Mbit, 0, datatype.Unsigned32(AppIDCx)),
			diam.NewAVP(avp.VendorID, avp.Mbit, 0, datatype.Unsigned32(VendorTGPP)),
		},
	})
	// NO_STATE_MAINTAINED
	m.NewAVP(avp.AuthSessionState, avp.Mbit, 0, datatype.Enumerated(1))
	m.NewAVP(avp.OriginHost, avp.Mbit, 0, datatype.DiameterIdentity(c.cfg.OriginHost))
	m.NewAVP(avp.OriginRealm, avp.Mbit, 0, datatype.DiameterIdentity(c.cfg.OriginRealm))
	m.NewAVP(avp.DestinationRealm, avp.Mbit, 0, datatype.DiameterIdentity(c.cfg.DestRealm))
	if c.cfg.DestHost != "" {
		m.NewAVP(avp.DestinationHost, avp.Mbit, 0, datatype.DiameterIdentity(c.cfg.DestHost))
	}
}

// newSessionID はSession-Id値を生成する。
func (c *Client) newSessionID() string {
	return fmt.Sprintf("%s;%s", c.cfg.OriginHost, uuid.NewString())
}

// exchange は要求を送信し、Session-Idで相関した応答を待つ。
// タイムアウト・送信失敗はCircuit Breakerの失敗として数える。
func (c *Client) exchange(ctx context.Context, exchangeName string, m *diam.Message, sid string) (*diam.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.HSSRequestTimeout)
	defer cancel()

	ch := make(chan *diam.Message, 1)
	c.mu.Lock()
	c.pending[sid] = ch
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, sid)
		c.mu.Unlock()
	}()

	start := time.Now()
	res, err := c.cb.Execute(func() (any, error) {
		if _, err := m.WriteTo(c.conn); err != nil {
			return nil, apperr.NewHSSError(exchangeName, 0,
				fmt.Errorf("%w: %v", apperr.ErrBackendUnavailable, err))
		}
		select {
		case ans := <-ch:
			return ans, nil
		case <-ctx.Done():
			return nil, apperr.NewHSSError(exchangeName, 0, apperr.ErrTimeout)
		}
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			slog.Warn("hss request short-circuited",
				"event_id", "HSS_CB_REJECT",
				"exchange", exchangeName,
			)
			return nil, apperr.NewHSSError(exchangeName, 0, apperr.ErrBackendUnavailable)
		}
		slog.Error("hss exchange failed",
			"event_id", "HSS_ERR",
			"exchange", exchangeName,
			"error", err.Error(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	slog.Debug("hss exchange completed",
		"exchange", exchangeName,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return res.(*diam.Message), nil
}

// handleAnswer は応答をSession-Idで相関させ、待機中の交換へ渡す。
func (c *Client) handleAnswer(conn diam.Conn, m *diam.Message) {
	a, err := m.FindAVP(avp.SessionID, 0)
	if err != nil {
		slog.Warn("answer without Session-Id", "event_id", "HSS_ANS_NO_SID")
		return
	}
	sid, _ := a.Data.(datatype.UTF8String)

	c.mu.Lock()
	ch, ok := c.pending[string(sid)]
	if ok {
		delete(c.pending, string(sid))
	}
	c.mu.Unlock()

	if !ok {
		// 期限切れ後に到着した応答は破棄する
		slog.Debug("discarding unmatched answer", "session_id", string(sid))
		return
	}
	ch <- m
}

// resultCode は応答のResult-Codeを返す。存在しない場合は0。
func resultCode(m *diam.Message) int32 {
	a, err := m.FindAVP(avp.ResultCode, 0)
	if err != nil {
		return 0
	}
	if v, ok := a.Data.(datatype.Unsigned32); ok {
		return int32(v)
	}
	return 0
}

// experimentalResultCode は応答のExperimental-Result-Codeを返す。存在しない場合は0。
func experimentalResultCode(m *diam.Message) int32 {
	a, err := m.FindAVP(avp.ExperimentalResult, 0)
	if err != nil {
		return 0
	}
	group, ok := a.Data.(*diam.GroupedAVP)
	if !ok {
		return 0
	}
	for _, sub := range group.AVP {
		if sub.Code == avp.ExperimentalResultCode {
			if v, ok := sub.Data.(datatype.Unsigned32); ok {
				return int32(v)
			}
		}
	}
	return 0
}

// findString は文字列系AVPの値を返す。存在しない場合は空文字列。
func findString(m *diam.Message, code uint32, vendor uint32) string {
	a, err := m.FindAVP(code, vendor)
	if err != nil {
		return ""
	}
	return avpString(a)
}

// avpString はAVPの文字列表現を返す。
func avpString(a *diam.AVP) string {
	switch v := a.Data.(type) {
	case datatype.UTF8String:
		return string(v)
	case datatype.OctetString:
		return string(v)
	case datatype.DiameterIdentity:
		return string(v)
	default:
		return ""
	}
}

// parseMAA はMultimedia-Auth応答を解析する。
func parseMAA(m *diam.Message) *MAAnswer {
	ans := &MAAnswer{ResultCode: resultCode(m)}

	item, err := m.FindAVP(avpSIPAuthDataItem, VendorTGPP)
	if err != nil {
		return ans
	}
	group, ok := item.Data.(*diam.GroupedAVP)
	if !ok {
		return ans
	}

	var authenticate, authorization, ck, ik string
	var digest credential.DigestVector
	for _, sub := range group.AVP {
		switch sub.Code {
		case avpSIPAuthenticationScheme:
			ans.Scheme = avpString(sub)
		case avpSIPAuthenticate:
			authenticate = avpString(sub)
		case avpSIPAuthorization:
			authorization = avpString(sub)
		case avpConfidentialityKey:
			ck = avpString(sub)
		case avpIntegrityKey:
			ik = avpString(sub)
		case avpSIPDigestAuthenticate:
			if dg, ok := sub.Data.(*diam.GroupedAVP); ok {
				for _, d := range dg.AVP {
					switch d.Code {
					case 104: // Digest-Realm
						digest.Realm = avpString(d)
					case 110: // Digest-QoP
						digest.QOP = avpString(d)
					case 121: // Digest-HA1
						digest.HA1 = avpString(d)
					}
				}
			}
		}
	}

	if digest.HA1 != "" {
		ans.Digest = &digest
	}
	if authenticate != "" {
		ans.AKA = &credential.AKAVector{
			Challenge:    []byte(authenticate),
			Response:     []byte(authorization),
			CryptKey:     []byte(ck),
			IntegrityKey: []byte(ik),
		}
	}
	return ans
}

// parseServerCapabilities はServer-Capabilities AVPを解析する。存在しない場合はnil。
func parseServerCapabilities(m *diam.Message) *ServerCapabilities {
	a, err := m.FindAVP(avpServerCapabilities, VendorTGPP)
	if err != nil {
		return nil
	}
	group, ok := a.Data.(*diam.GroupedAVP)
	if !ok {
		return nil
	}

	caps := &ServerCapabilities{}
	for _, sub := range group.AVP {
		switch sub.Code {
		case avpMandatoryCapability:
			if v, ok := sub.Data.(datatype.Unsigned32); ok {
				caps.Mandatory = append(caps.Mandatory, uint32(v))
			}
		case avpOptionalCapability:
			if v, ok := sub.Data.(datatype.Unsigned32); ok {
				caps.Optional = append(caps.Optional, uint32(v))
			}
		case avpServerName:
			caps.ServerName = avpString(sub)
		}
	}
	return caps
}
