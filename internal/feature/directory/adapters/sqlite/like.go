package sqlite

import "strings"

// likeEscaper はLIKEパターンの特殊文字をエスケープします（ESCAPE '\' と組み合わせて使用）。
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern は s をリテラルとして含む行に一致するLIKEパターンを返します。
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
