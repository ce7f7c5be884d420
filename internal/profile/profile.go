package profile

import (
	"encoding/xml"
	"log/slog"
	"strings"
)

// imsSubscription はIMSSubscription文書の解析用構造体。
// 公開識別子はIMSSubscription→ServiceProfile→PublicIdentity→Identityの
// 階層から出現順に収集する。
type imsSubscription struct {
	XMLName         xml.Name         `xml:"IMSSubscription"`
	PrivateID       string           `xml:"PrivateID"`
	ServiceProfiles []serviceProfile `xml:"ServiceProfile"`
}

type serviceProfile struct {
	PublicIdentities []publicIdentity `xml:"PublicIdentity"`
}

type publicIdentity struct {
	Identities []string `xml:"Identity"`
}

// parse は加入プロファイル文書を解析する。失敗時はnilを返す。
func parse(doc string) *imsSubscription {
	if doc == "" {
		return nil
	}
	var sub imsSubscription
	if err := xml.Unmarshal([]byte(doc), &sub); err != nil {
		slog.Warn("failed to parse IMS subscription document",
			"event_id", "PROFILE_PARSE_ERR",
			"error", err.Error(),
		)
		return nil
	}
	return &sub
}

// PublicIDs は文書に含まれる公開識別子を出現順に返す。
// 重複は除去しない。解析に失敗した場合は空を返す。
func PublicIDs(doc string) []string {
	sub := parse(doc)
	if sub == nil {
		return nil
	}

	var ids []string
	for _, sp := range sub.ServiceProfiles {
		for _, pi := range sp.PublicIdentities {
			ids = append(ids, pi.Identities...)
		}
	}
	return ids
}

// PrivateIDHint は文書に埋め込まれた秘密識別子を返す。
// 存在しない場合・解析に失敗した場合は空文字列を返す。
func PrivateIDHint(doc string) string {
	sub := parse(doc)
	if sub == nil {
		return ""
	}
	return sub.PrivateID
}

// Wrap は登録状態とプロファイル文書を登録データ文書にまとめる。
// 文書が空または解析不能な場合はRegistrationState要素のみを含む。
func Wrap(state RegistrationState, doc string) string {
	var b strings.Builder
	b.WriteString("<ClearwaterRegData><RegistrationState>")
	b.WriteString(state.String())
	b.WriteString("</RegistrationState>")
	if parse(doc) != nil {
		b.WriteString(stripXMLDecl(doc))
	}
	b.WriteString("</ClearwaterRegData>")
	return b.String()
}

// stripXMLDecl は文書先頭のXML宣言を取り除く。
func stripXMLDecl(doc string) string {
	trimmed := strings.TrimLeft(doc, " \t\r\n")
	if strings.HasPrefix(trimmed, "<?xml") {
		if end := strings.Index(trimmed, "?>"); end >= 0 {
			return strings.TrimLeft(trimmed[end+2:], " \t\r\n")
		}
	}
	return trimmed
}
