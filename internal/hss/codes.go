// Package hss はDiameter CxアプリケーションによるHSSゲートウェイを提供する。
package hss

// Cxアプリケーション定数
const (
	// AppIDCx は3GPP CxインターフェースのApplication-Id
	AppIDCx uint32 = 16777216
	// VendorTGPP は3GPPのVendor-Id
	VendorTGPP uint32 = 10415
)

// Cxコマンドコード
const (
	cmdUserAuthorization uint32 = 300
	cmdServerAssignment  uint32 = 301
	cmdLocationInfo      uint32 = 302
	cmdMultimediaAuth    uint32 = 303
)

// CxのベンダーAVPコード（3GPP TS 29.229）
const (
	avpVisitedNetworkIdentifier uint32 = 600
	avpPublicIdentity           uint32 = 601
	avpServerName               uint32 = 602
	avpServerCapabilities       uint32 = 603
	avpMandatoryCapability      uint32 = 604
	avpOptionalCapability       uint32 = 605
	avpUserData                 uint32 = 606
	avpSIPNumberAuthItems       uint32 = 607
	avpSIPAuthenticationScheme  uint32 = 608
	avpSIPAuthenticate          uint32 = 609
	avpSIPAuthorization         uint32 = 610
	avpSIPAuthDataItem          uint32 = 612
	avpServerAssignmentType     uint32 = 614
	avpUserAuthorizationType    uint32 = 623
	avpUserDataAlreadyAvailable uint32 = 624
	avpConfidentialityKey       uint32 = 625
	avpIntegrityKey             uint32 = 626
	avpOriginatingRequest       uint32 = 633
	avpSIPDigestAuthenticate    uint32 = 635
)

// Diameterベース結果コード
const (
	// ResultSuccess はDIAMETER_SUCCESS
	ResultSuccess int32 = 2001
	// ResultUnableToDeliver はDIAMETER_UNABLE_TO_DELIVER
	ResultUnableToDeliver int32 = 3002
	// ResultTooBusy はDIAMETER_TOO_BUSY
	ResultTooBusy int32 = 3004
	// ResultUserUnknown はDIAMETER_ERROR_USER_UNKNOWN（Cxでは5001）
	ResultUserUnknown int32 = 5001
	// ResultAuthorizationRejected はDIAMETER_AUTHORIZATION_REJECTED
	ResultAuthorizationRejected int32 = 5003
)

// 3GPP実験結果コード（Experimental-Result-Code, Vendor-Id 10415）
const (
	ExpResultFirstRegistration      int32 = 2001
	ExpResultSubsequentRegistration int32 = 2002
	ExpResultUnregisteredService    int32 = 2003
	ExpResultUserUnknown            int32 = 5001
	ExpResultIdentitiesDontMatch    int32 = 5002
	ExpResultIdentityNotRegistered  int32 = 5003
	ExpResultRoamingNotAllowed      int32 = 5004
)

// ServerAssignmentType はSAR上のServer-Assignment-Type AVP値を表す。
type ServerAssignmentType int32

const (
	AssignmentNoAssignment                 ServerAssignmentType = 0
	AssignmentRegistration                 ServerAssignmentType = 1
	AssignmentReRegistration               ServerAssignmentType = 2
	AssignmentUnregisteredUser             ServerAssignmentType = 3
	AssignmentTimeoutDeregistration        ServerAssignmentType = 4
	AssignmentUserDeregistration           ServerAssignmentType = 5
	AssignmentAdministrativeDeregistration ServerAssignmentType = 8
	AssignmentAuthenticationFailure        ServerAssignmentType = 9
	AssignmentAuthenticationTimeout        ServerAssignmentType = 10
)

// AuthorizationType はUAR上のUser-Authorization-Type AVP値を表す。
type AuthorizationType int32

const (
	// AuthTypeRegistration は登録・再登録の認可要求
	AuthTypeRegistration AuthorizationType = 0
	// AuthTypeDeregistration は登録解除の認可要求
	AuthTypeDeregistration AuthorizationType = 1
	// AuthTypeCapabilities はS-CSCF能力の問い合わせ
	AuthTypeCapabilities AuthorizationType = 2
)

// ParseAuthorizationType はHTTPクエリのauth-type値をAVP値に変換する。
// 未指定・未知の値は登録扱い。
func ParseAuthorizationType(s string) AuthorizationType {
	switch s {
	case "DEREG":
		return AuthTypeDeregistration
	case "CAPAB":
		return AuthTypeCapabilities
	default:
		return AuthTypeRegistration
	}
}
