package credential

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// digestSimpleJSON は /impi/<id>/digest 応答のボディ。
type digestSimpleJSON struct {
	DigestHA1 string `json:"digest_HA1"`
}

// digestFullJSON は /impi/<id>/av 応答のDigestボディ。
type digestFullJSON struct {
	Digest digestFieldsJSON `json:"digest"`
}

type digestFieldsJSON struct {
	HA1   string `json:"ha1"`
	Realm string `json:"realm"`
	QOP   string `json:"qop"`
}

// akaJSON は /impi/<id>/av 応答のAKAボディ。バイト列フィールドは16進数文字列。
type akaJSON struct {
	AKA akaFieldsJSON `json:"aka"`
}

type akaFieldsJSON struct {
	Challenge    string `json:"challenge"`
	Response     string `json:"response"`
	CryptKey     string `json:"cryptkey"`
	IntegrityKey string `json:"integritykey"`
}

// EncodeDigestSimple はDigestベクターを簡易形式 {"digest_HA1": ...} に変換する。
func EncodeDigestSimple(v *DigestVector) ([]byte, error) {
	return json.Marshal(digestSimpleJSON{DigestHA1: v.HA1})
}

// DecodeDigestSimple は簡易形式のボディをDigestベクターに変換する。
func DecodeDigestSimple(data []byte) (*DigestVector, error) {
	var raw digestSimpleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode digest body: %w", err)
	}
	return &DigestVector{HA1: raw.DigestHA1}, nil
}

// EncodeDigest はDigestベクターを完全形式 {"digest": {...}} に変換する。
// qopが空の場合は"auth"として出力する。
func EncodeDigest(v *DigestVector) ([]byte, error) {
	return json.Marshal(digestFullJSON{
		Digest: digestFieldsJSON{
			HA1:   v.HA1,
			Realm: v.Realm,
			QOP:   v.EffectiveQOP(),
		},
	})
}

// DecodeDigest は完全形式のボディをDigestベクターに変換する。
func DecodeDigest(data []byte) (*DigestVector, error) {
	var raw digestFullJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode digest body: %w", err)
	}
	return &DigestVector{
		HA1:   raw.Digest.HA1,
		Realm: raw.Digest.Realm,
		QOP:   raw.Digest.QOP,
	}, nil
}

// EncodeAKA はAKAベクターを {"aka": {...}} に変換する。
func EncodeAKA(v *AKAVector) ([]byte, error) {
	return json.Marshal(akaJSON{
		AKA: akaFieldsJSON{
			Challenge:    hex.EncodeToString(v.Challenge),
			Response:     hex.EncodeToString(v.Response),
			CryptKey:     hex.EncodeToString(v.CryptKey),
			IntegrityKey: hex.EncodeToString(v.IntegrityKey),
		},
	})
}

// DecodeAKA はAKAボディをAKAベクターに変換する。
func DecodeAKA(data []byte) (*AKAVector, error) {
	var raw akaJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode aka body: %w", err)
	}

	challenge, err := hex.DecodeString(raw.AKA.Challenge)
	if err != nil {
		return nil, fmt.Errorf("decode aka challenge: %w", err)
	}
	response, err := hex.DecodeString(raw.AKA.Response)
	if err != nil {
		return nil, fmt.Errorf("decode aka response: %w", err)
	}
	ck, err := hex.DecodeString(raw.AKA.CryptKey)
	if err != nil {
		return nil, fmt.Errorf("decode aka cryptkey: %w", err)
	}
	ik, err := hex.DecodeString(raw.AKA.IntegrityKey)
	if err != nil {
		return nil, fmt.Errorf("decode aka integritykey: %w", err)
	}

	return &AKAVector{
		Challenge:    challenge,
		Response:     response,
		CryptKey:     ck,
		IntegrityKey: ik,
	}, nil
}
