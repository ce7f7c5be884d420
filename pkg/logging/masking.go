// Package logging はログ関連のユーティリティを提供する。
package logging

import "strings"

// MaskIdentity はIMPI/IMPU等の加入者識別子をマスキングする。
// ローカル部の先頭2文字 + マスク + 末尾1文字を残し、ドメイン部はそのまま出力する。
// 例: sip:alice@example.com → sip:al**e@example.com
// enabled=false の場合はマスキングせずにそのまま返す。
func MaskIdentity(id string, enabled bool) string {
	if !enabled || id == "" {
		return id
	}

	local := id
	domain := ""
	if at := strings.LastIndex(id, "@"); at >= 0 {
		local = id[:at]
		domain = id[at:]
	}

	// sip: / tel: スキームは保持する
	scheme := ""
	if colon := strings.Index(local, ":"); colon >= 0 {
		scheme = local[:colon+1]
		local = local[colon+1:]
	}

	return scheme + MaskPartial(local, 2, 1, '*') + domain
}

// MaskPartial は文字列の一部をマスキングする。
// keepPrefix: 先頭から保持する文字数
// keepSuffix: 末尾から保持する文字数
// maskChar: マスキングに使用する文字
func MaskPartial(s string, keepPrefix, keepSuffix int, maskChar rune) string {
	runes := []rune(s)
	length := len(runes)

	// 文字列が短すぎる場合はそのまま返す
	if length <= keepPrefix+keepSuffix {
		return s
	}

	result := make([]rune, length)

	for i := 0; i < keepPrefix; i++ {
		result[i] = runes[i]
	}
	for i := keepPrefix; i < length-keepSuffix; i++ {
		result[i] = maskChar
	}
	for i := length - keepSuffix; i < length; i++ {
		result[i] = runes[i]
	}

	return string(result)
}
