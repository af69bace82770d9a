package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyInvocationID = "invocation_id"
	KeyPlanSig      = "plan_signature"
	KeyPackage      = "package"
	KeyBuilder      = "builder"
	KeyActionCount  = "action_count"
	KeyAssetCount   = "asset_count"
	KeyAdded        = "added"
	KeyRemoved      = "removed"
	KeyUnchanged    = "unchanged"
	KeyDurationMS   = "duration_ms"
	KeyConfig       = "config"
	KeyRevision     = "revision"
	KeySubject      = "subject"
	KeyError        = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func InvocationID(id string) slog.Attr  { return slog.String(KeyInvocationID, id) }
func PlanSignature(s string) slog.Attr  { return slog.String(KeyPlanSig, s) }
func Package(p string) slog.Attr        { return slog.String(KeyPackage, p) }
func Builder(b string) slog.Attr        { return slog.String(KeyBuilder, b) }
func ActionCount(n int) slog.Attr       { return slog.Int(KeyActionCount, n) }
func AssetCount(n int) slog.Attr        { return slog.Int(KeyAssetCount, n) }
func Added(n int) slog.Attr             { return slog.Int(KeyAdded, n) }
func Removed(n int) slog.Attr           { return slog.Int(KeyRemoved, n) }
func Unchanged(n int) slog.Attr         { return slog.Int(KeyUnchanged, n) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func ConfigPath(p string) slog.Attr     { return slog.String(KeyConfig, p) }
func Revision(r string) slog.Attr       { return slog.String(KeyRevision, r) }
func Subject(s string) slog.Attr        { return slog.String(KeySubject, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
