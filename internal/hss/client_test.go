package hss

import (
	"testing"

	"github.com/fiorix/go-diameter/v4/diam"
	"github.com/fiorix/go-diameter/v4/diam/avp"
	"github.com/fiorix/go-diameter/v4/diam/datatype"
	"github.com/fiorix/go-diameter/v4/diam/dict"
)

func TestLoadDict(t *testing.T) {
	// 辞書XMLが壊れているとpanicする
	loadDict()

	if _, err := dict.Default.FindCommand(AppIDCx, cmdMultimediaAuth); err != nil {
		t.Errorf("Multimedia-Auth command not registered: %v", err)
	}
	if _, err := dict.Default.FindAVP(AppIDCx, "Public-Identity"); err != nil {
		t.Errorf("Public-Identity AVP not registered: %v", err)
	}
}

func newTestAnswer(cmd uint32) *diam.Message {
	loadDict()
	return diam.NewMessage(cmd, 0, AppIDCx, 0, 0, dict.Default)
}

func TestParseMAADigest(t *testing.T) {
	m := newTestAnswer(cmdMultimediaAuth)
	m.NewAVP(avp.ResultCode, avp.Mbit, 0, datatype.Unsigned32(2001))
	m.NewAVP(avpSIPAuthDataItem, avp.Mbit|avp.Vbit, VendorTGPP, &diam.GroupedAVP{
		AVP: []*diam.AVP{
			diam.NewAVP(avpSIPAuthenticationScheme, avp.Mbit|avp.Vbit, VendorTGPP, datatype.UTF8String("SIP Digest")),
			diam.NewAVP(avpSIPDigestAuthenticate, avp.Vbit, VendorTGPP, &diam.GroupedAVP{
				AVP: []*diam.AVP{
					diam.NewAVP(104, avp.Mbit, 0, datatype.UTF8String("example.com")),
					diam.NewAVP(110, avp.Mbit, 0, datatype.UTF8String("")),
					diam.NewAVP(121, avp.Mbit, 0, datatype.UTF8String("abc123")),
				},
			}),
		},
	})

	ans := parseMAA(m)
	if ans.ResultCode != 2001 {
		t.Errorf("ResultCode = %d, want 2001", ans.ResultCode)
	}
	if ans.Scheme != "SIP Digest" {
		t.Errorf("Scheme = %q, want %q", ans.Scheme, "SIP Digest")
	}
	if ans.Digest == nil {
		t.Fatal("Digest = nil, want vector")
	}
	if ans.Digest.HA1 != "abc123" || ans.Digest.Realm != "example.com" {
		t.Errorf("Digest = %+v", ans.Digest)
	}
	if ans.AKA != nil {
		t.Errorf("AKA = %+v, want nil", ans.AKA)
	}
}

func TestParseMAAAKA(t *testing.T) {
	m := newTestAnswer(cmdMultimediaAuth)
	m.NewAVP(avp.ResultCode, avp.Mbit, 0, datatype.Unsigned32(2001))
	m.NewAVP(avpSIPAuthDataItem, avp.Mbit|avp.Vbit, VendorTGPP, &diam.GroupedAVP{
		AVP: []*diam.AVP{
			diam.NewAVP(avpSIPAuthenticationScheme, avp.Mbit|avp.Vbit, VendorTGPP, datatype.UTF8String("Digest-AKAv1-MD5")),
			diam.NewAVP(avpSIPAuthenticate, avp.Mbit|avp.Vbit, VendorTGPP, datatype.OctetString("\x01\x02")),
			diam.NewAVP(avpSIPAuthorization, avp.Mbit|avp.Vbit, VendorTGPP, datatype.OctetString("\x03\x04")),
			diam.NewAVP(avpConfidentialityKey, avp.Mbit|avp.Vbit, VendorTGPP, datatype.OctetString("\x05")),
			diam.NewAVP(avpIntegrityKey, avp.Mbit|avp.Vbit, VendorTGPP, datatype.OctetString("\x06")),
		},
	})

	ans := parseMAA(m)
	if ans.AKA == nil {
		t.Fatal("AKA = nil, want vector")
	}
	if string(ans.AKA.Challenge) != "\x01\x02" {
		t.Errorf("Challenge = %x", ans.AKA.Challenge)
	}
	if string(ans.AKA.Response) != "\x03\x04" {
		t.Errorf("Response = %x", ans.AKA.Response)
	}
	if ans.Digest != nil {
		t.Errorf("Digest = %+v, want nil", ans.Digest)
	}
}

func TestParseMAAWithoutAuthData(t *testing.T) {
	m := newTestAnswer(cmdMultimediaAuth)
	m.NewAVP(avp.ResultCode, avp.Mbit, 0, datatype.Unsigned32(5001))

	ans := parseMAA(m)
	if ans.ResultCode != 5001 {
		t.Errorf("ResultCode = %d, want 5001", ans.ResultCode)
	}
	if ans.Digest != nil || ans.AKA != nil {
		t.Error("expected no vectors on 5001 answer")
	}
}

func TestExperimentalResultCode(t *testing.T) {
	m := newTestAnswer(cmdUserAuthorization)
	m.NewAVP(avp.ExperimentalResult, avp.Mbit, 0, &diam.GroupedAVP{
		AVP: []*diam.AVP{
			diam.NewAVP(avp.VendorID, avp.Mbit, 0, datatype.Unsigned32(VendorTGPP)),
			diam.NewAVP(avp.ExperimentalResultCode, avp.Mbit, 0, datatype.Unsigned32(5001)),
		},
	})

	if got := experimentalResultCode(m); got != 5001 {
		t.Errorf("experimentalResultCode = %d, want 5001", got)
	}

	empty := newTestAnswer(cmdUserAuthorization)
	if got := experimentalResultCode(empty); got != 0 {
		t.Errorf("experimentalResultCode on empty = %d, want 0", got)
	}
}

func TestParseServerCapabilities(t *testing.T) {
	m := newTestAnswer(cmdUserAuthorization)
	m.NewAVP(avp.ResultCode, avp.Mbit, 0, datatype.Unsigned32(2001))
	m.NewAVP(avpServerCapabilities, avp.Mbit|avp.Vbit, VendorTGPP, &diam.GroupedAVP{
		AVP: []*diam.AVP{
			diam.NewAVP(avpMandatoryCapability, avp.Mbit|avp.Vbit, VendorTGPP, datatype.Unsigned32(1)),
			diam.NewAVP(avpMandatoryCapability, avp.Mbit|avp.Vbit, VendorTGPP, datatype.Unsigned32(2)),
			diam.NewAVP(avpOptionalCapability, avp.Mbit|avp.Vbit, VendorTGPP, datatype.Unsigned32(3)),
			diam.NewAVP(avpServerName, avp.Mbit|avp.Vbit, VendorTGPP, datatype.UTF8String("sip:scscf.example.com")),
		},
	})

	caps := parseServerCapabilities(m)
	if caps == nil {
		t.Fatal("capabilities = nil")
	}
	if len(caps.Mandatory) != 2 || caps.Mandatory[0] != 1 || caps.Mandatory[1] != 2 {
		t.Errorf("Mandatory = %v", caps.Mandatory)
	}
	if len(caps.Optional) != 1 || caps.Optional[0] != 3 {
		t.Errorf("Optional = %v", caps.Optional)
	}
	if caps.ServerName != "sip:scscf.example.com" {
		t.Errorf("ServerName = %q", caps.ServerName)
	}

	if caps := parseServerCapabilities(newTestAnswer(cmdUserAuthorization)); caps != nil {
		t.Errorf("capabilities on empty answer = %+v, want nil", caps)
	}
}

func TestParseAuthorizationType(t *testing.T) {
	tests := []struct {
		in   string
		want AuthorizationType
	}{
		{"", AuthTypeRegistration},
		{"REG", AuthTypeRegistration},
		{"DEREG", AuthTypeDeregistration},
		{"CAPAB", AuthTypeCapabilities},
		{"bogus", AuthTypeRegistration},
	}

	for _, tt := range tests {
		if got := ParseAuthorizationType(tt.in); got != tt.want {
			t.Errorf("ParseAuthorizationType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
