package store

// キャッシュのキー・フィールド構成。
// 公開識別子の行がプロファイルと登録状態と関連秘密識別子を持ち、
// 秘密識別子の行がDigest認証情報と関連公開識別子を持つ。
const (
	KeyPrefixPublicID  = "impu:" // 公開識別子の行
	KeyPrefixPrivateID = "impi:" // 秘密識別子の行

	FieldProfile      = "profile"
	FieldIsRegistered = "is_registered"
	FieldTimestamp    = "cas_ts"
	FieldDigestHA1    = "digest_ha1"
	FieldDigestRealm  = "digest_realm"
	FieldDigestQOP    = "digest_qop"

	// 関連識別子は識別子ごとに1フィールド
	FieldPrefixAssocPrivateID = "associated_private_id:"
	FieldPrefixAssocPublicID  = "public_id:"
)

// publicIDKey は公開識別子の行キーを返す。
func publicIDKey(impu string) string {
	return KeyPrefixPublicID + impu
}

// privateIDKey は秘密識別子の行キーを返す。
func privateIDKey(impi string) string {
	return KeyPrefixPrivateID + impi
}
