// Package profile はIMS加入プロファイル文書の解析と登録状態の型を提供する。
package profile

// RegistrationState は加入者の登録状態を表す。
type RegistrationState int

const (
	// StateNotRegistered はレコードが存在しない状態
	StateNotRegistered RegistrationState = iota
	// StateUnregistered はレコードは存在するが未登録の状態。サービスデータは有効
	StateUnregistered
	// StateRegistered は登録済みでバインディングが存在する状態
	StateRegistered
)

// String はワイヤ上の状態名を返す。
func (s RegistrationState) String() string {
	switch s {
	case StateRegistered:
		return "REGISTERED"
	case StateUnregistered:
		return "UNREGISTERED"
	default:
		return "NOT_REGISTERED"
	}
}

// ParseRegistrationState はワイヤ上の状態名をRegistrationStateに変換する。
// 未知の値はStateNotRegisteredとして扱う。
func ParseRegistrationState(s string) RegistrationState {
	switch s {
	case "REGISTERED":
		return StateRegistered
	case "UNREGISTERED":
		return StateUnregistered
	default:
		return StateNotRegistered
	}
}
