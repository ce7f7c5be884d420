package hss

import (
	"strings"
	"sync"

	"github.com/fiorix/go-diameter/v4/diam/dict"
)

// cxDictXML はCxアプリケーションの辞書定義。
// ベースプロトコルのAVPはgo-diameter組み込みの辞書に含まれるため、
// ここではCxのコマンドと3GPPベンダーAVP、およびSIP Digest系AVPのみを定義する。
const cxDictXML = `<?xml version="1.0" encoding="UTF-8"?>
<diameter>
	<application id="16777216" type="auth" name="TGPP Cx">
		<vendor id="10415" name="TGPP"/>

		<command code="300" short="UA" name="User-Authorization">
			<request>
				<rule avp="Session-Id" required="true" max="1"/>
				<rule avp="Vendor-Specific-Application-Id" required="true" max="1"/>
				<rule avp="Auth-Session-State" required="true" max="1"/>
				<rule avp="Origin-Host" required="true" max="1"/>
				<rule avp="Origin-Realm" required="true" max="1"/>
				<rule avp="Destination-Host" required="false" max="1"/>
				<rule avp="Destination-Realm" required="true" max="1"/>
				<rule avp="User-Name" required="true" max="1"/>
				<rule avp="Public-Identity" required="true" max="1"/>
				<rule avp="Visited-Network-Identifier" required="true" max="1"/>
				<rule avp="User-Authorization-Type" required="false" max="1"/>
			</request>
			<answer>
				<rule avp="Session-Id" required="true" max="1"/>
				<rule avp="Vendor-Specific-Application-Id" required="true" max="1"/>
				<rule avp="Result-Code" required="false" max="1"/>
				<rule avp="Experimental-Result" required="false" max="1"/>
				<rule avp="Auth-Session-State" required="true" max="1"/>
				<rule avp="Origin-Host" required="true" max="1"/>
				<rule avp="Origin-Realm" required="true" max="1"/>
				<rule avp="Server-Name" required="false" max="1"/>
				<rule avp="Server-Capabilities" required="false" max="1"/>
			</answer>
		</command>

		<command code="301" short="SA" name="Server-Assignment">
			<request>
				<rule avp="Session-Id" required="true" max="1"/>
				<rule avp="Vendor-Specific-Application-Id" required="true" max="1"/>
				<rule avp="Auth-Session-State" required="true" max="1"/>
				<rule avp="Origin-Host" required="true" max="1"/>
				<rule avp="Origin-Realm" required="true" max="1"/>
				<rule avp="Destination-Host" required="false" max="1"/>
				<rule avp="Destination-Realm" required="true" max="1"/>
				<rule avp="User-Name" required="false" max="1"/>
				<rule avp="Public-Identity" required="false"/>
				<rule avp="Server-Name" required="true" max="1"/>
				<rule avp="Server-Assignment-Type" required="true" max="1"/>
				<rule avp="User-Data-Already-Available" required="true" max="1"/>
			</request>
			<answer>
				<rule avp="Session-Id" required="true" max="1"/>
				<rule avp="Vendor-Specific-Application-Id" required="true" max="1"/>
				<rule avp="Result-Code" required="false" max="1"/>
				<rule avp="Experimental-Result" required="false" max="1"/>
				<rule avp="Auth-Session-State" required="true" max="1"/>
				<rule avp="Origin-Host" required="true" max="1"/>
				<rule avp="Origin-Realm" required="true" max="1"/>
				<rule avp="User-Name" required="false" max="1"/>
				<rule avp="User-Data" required="false" max="1"/>
			</answer>
		</command>

		<command code="302" short="LI" name="Location-Info">
			<request>
				<rule avp="Session-Id" required="true" max="1"/>
				<rule avp="Vendor-Specific-Application-Id" required="true" max="1"/>
				<rule avp="Auth-Session-State" required="true" max="1"/>
				<rule avp="Origin-Host" required="true" max="1"/>
				<rule avp="Origin-Realm" required="true" max="1"/>
				<rule avp="Destination-Host" required="false" max="1"/>
				<rule avp="Destination-Realm" required="true" max="1"/>
				<rule avp="Originating-Request" required="false" max="1"/>
				<rule avp="Public-Identity" required="true" max="1"/>
				<rule avp="User-Authorization-Type" required="false" max="1"/>
			</request>
			<answer>
				<rule avp="Session-Id" required="true" max="1"/>
				<rule avp="Vendor-Specific-Application-Id" required="true" max="1"/>
				<rule avp="Result-Code" required="false" max="1"/>
				<rule avp="Experimental-Result" required="false" max="1"/>
				<rule avp="Auth-Session-State" required="true" max="1"/>
				<rule avp="Origin-Host" required="true" max="1"/>
				<rule avp="Origin-Realm" required="true" max="1"/>
				<rule avp="Server-Name" required="false" max="1"/>
				<rule avp="Server-Capabilities" required="false" max="1"/>
			</answer>
		</command>

		<command code="303" short="MA" name="Multimedia-Auth">
			<request>
				<rule avp="Session-Id" required="true" max="1"/>
				<rule avp="Vendor-Specific-Application-Id" required="true" max="1"/>
				<rule avp="Auth-Session-State" required="true" max="1"/>
				<rule avp="Origin-Host" required="true" max="1"/>
				<rule avp="Origin-Realm" required="true" max="1"/>
				<rule avp="Destination-Host" required="false" max="1"/>
				<rule avp="Destination-Realm" required="true" max="1"/>
				<rule avp="User-Name" required="true" max="1"/>
				<rule avp="Public-Identity" required="true" max="1"/>
				<rule avp="SIP-Auth-Data-Item" required="true" max="1"/>
				<rule avp="SIP-Number-Auth-Items" required="true" max="1"/>
				<rule avp="Server-Name" required="true" max="1"/>
			</request>
			<answer>
				<rule avp="Session-Id" required="true" max="1"/>
				<rule avp="Vendor-Specific-Application-Id" required="true" max="1"/>
				<rule avp="Result-Code" required="false" max="1"/>
				<rule avp="Experimental-Result" required="false" max="1"/>
				<rule avp="Auth-Session-State" required="true" max="1"/>
				<rule avp="Origin-Host" required="true" max="1"/>
				<rule avp="Origin-Realm" required="true" max="1"/>
				<rule avp="User-Name" required="false" max="1"/>
				<rule avp="Public-Identity" required="false" max="1"/>
				<rule avp="SIP-Number-Auth-Items" required="false" max="1"/>
				<rule avp="SIP-Auth-Data-Item" required="false"/>
			</answer>
		</command>

		<avp name="Visited-Network-Identifier" code="600" must="M,V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="OctetString"/>
		</avp>
		<avp name="Public-Identity" code="601" must="M,V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="UTF8String"/>
		</avp>
		<avp name="Server-Name" code="602" must="M,V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="UTF8String"/>
		</avp>
		<avp name="Server-Capabilities" code="603" must="M,V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="Grouped">
				<rule avp="Mandatory-Capability" required="false"/>
				<rule avp="Optional-Capability" required="false"/>
				<rule avp="Server-Name" required="false"/>
			</data>
		</avp>
		<avp name="Mandatory-Capability" code="604" must="M,V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="Unsigned32"/>
		</avp>
		<avp name="Optional-Capability" code="605" must="M,V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="Unsigned32"/>
		</avp>
		<avp name="User-Data" code="606" must="M,V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="OctetString"/>
		</avp>
		<avp name="SIP-Number-Auth-Items" code="607" must="M,V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="Unsigned32"/>
		</avp>
		<avp name="SIP-Authentication-Scheme" code="608" must="M,V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="UTF8String"/>
		</avp>
		<avp name="SIP-Authenticate" code="609" must="M,V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="OctetString"/>
		</avp>
		<avp name="SIP-Authorization" code="610" must="M,V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="OctetString"/>
		</avp>
		<avp name="SIP-Auth-Data-Item" code="612" must="M,V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="Grouped">
				<rule avp="SIP-Authentication-Scheme" required="false" max="1"/>
				<rule avp="SIP-Authenticate" required="false" max="1"/>
				<rule avp="SIP-Authorization" required="false" max="1"/>
				<rule avp="SIP-Digest-Authenticate" required="false" max="1"/>
				<rule avp="Confidentiality-Key" required="false" max="1"/>
				<rule avp="Integrity-Key" required="false" max="1"/>
			</data>
		</avp>
		<avp name="Server-Assignment-Type" code="614" must="M,V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="Enumerated">
				<item code="0" name="NO_ASSIGNMENT"/>
				<item code="1" name="REGISTRATION"/>
				<item code="2" name="RE_REGISTRATION"/>
				<item code="3" name="UNREGISTERED_USER"/>
				<item code="4" name="TIMEOUT_DEREGISTRATION"/>
				<item code="5" name="USER_DEREGISTRATION"/>
				<item code="8" name="ADMINISTRATIVE_DEREGISTRATION"/>
				<item code="9" name="AUTHENTICATION_FAILURE"/>
				<item code="10" name="AUTHENTICATION_TIMEOUT"/>
			</data>
		</avp>
		<avp name="User-Authorization-Type" code="623" must="M,V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="Enumerated">
				<item code="0" name="REGISTRATION"/>
				<item code="1" name="DE_REGISTRATION"/>
				<item code="2" name="REGISTRATION_AND_CAPABILITIES"/>
			</data>
		</avp>
		<avp name="User-Data-Already-Available" code="624" must="M,V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="Enumerated">
				<item code="0" name="USER_DATA_NOT_AVAILABLE"/>
				<item code="1" name="USER_DATA_ALREADY_AVAILABLE"/>
			</data>
		</avp>
		<avp name="Confidentiality-Key" code="625" must="M,V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="OctetString"/>
		</avp>
		<avp name="Integrity-Key" code="626" must="M,V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="OctetString"/>
		</avp>
		<avp name="Originating-Request" code="633" must="M,V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="Enumerated">
				<item code="0" name="ORIGINATING"/>
			</data>
		</avp>
		<avp name="SIP-Digest-Authenticate" code="635" must="V" may="P" must-not="-" may-encrypt="N" vendor-id="10415">
			<data type="Grouped">
				<rule avp="Digest-Realm" required="true" max="1"/>
				<rule avp="Digest-Algorithm" required="false" max="1"/>
				<rule avp="Digest-QoP" required="false" max="1"/>
				<rule avp="Digest-HA1" required="false" max="1"/>
			</data>
		</avp>

		<avp name="Digest-Realm" code="104" must="M" may="P" must-not="V" may-encrypt="Y">
			<data type="UTF8String"/>
		</avp>
		<avp name="Digest-QoP" code="110" must="M" may="P" must-not="V" may-encrypt="Y">
			<data type="UTF8String"/>
		</avp>
		<avp name="Digest-Algorithm" code="111" must="M" may="P" must-not="V" may-encrypt="Y">
			<data type="UTF8String"/>
		</avp>
		<avp name="Digest-HA1" code="121" must="M" may="P" must-not="V" may-encrypt="Y">
			<data type="UTF8String"/>
		</avp>
	</application>
</diameter>`

var loadDictOnce sync.Once

// loadDict はCx辞書をデフォルトパーサーに登録する。
func loadDict() {
	loadDictOnce.Do(func() {
		if err := dict.Default.Load(strings.NewReader(cxDictXML)); err != nil {
			// 辞書は定数であり、ロード失敗は起動不能を意味する
			panic(err)
		}
	})
}
