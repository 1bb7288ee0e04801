package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Get2Core/fs-project/internal/feature/directory/domain/entity"
	jwtmw "github.com/Get2Core/fs-project/internal/platform/jwt"
)

const sampleCSV = `corp_code,corp_name,corp_eng_name,stock_code,modify_date
00126380,삼성전자,"SAMSUNG ELECTRONICS CO,.LTD",005930,20230101
00164779,에스케이하이닉스,SK hynix Inc.,000660,20230101
00999999,삼성생명보험,Samsung Life Insurance,032830,20230101
01000000,비상장삼성,,,20230101
,이름만있음,,,20230101
`

// execute は rootCmd を args で実行し、標準出力を返します。
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeSample(t *testing.T) (csvPath, db string) {
	t.Helper()
	dir := t.TempDir()
	csvPath = filepath.Join(dir, "corp_codes.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o644))
	return csvPath, filepath.Join(dir, "data", "companies.db")
}

func TestBuildSearchStats(t *testing.T) {
	csvPath, db := writeSample(t)

	out, err := execute(t, "build", "--db", db, "--input", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "records:      4 (listed 3, unlisted 1)")
	assert.Contains(t, out, "rejected:     1")

	out, err = execute(t, "search", "--db", db, "삼성", "--limit", "10")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "삼성생명보험")
	assert.Contains(t, lines[2], "삼성전자")
	assert.Contains(t, lines[3], "비상장삼성")
	assert.Contains(t, lines[3], "-")

	// 前後の空白は除去して検索する
	trimmed, err := execute(t, "search", "--db", db, "  삼성 ")
	require.NoError(t, err)
	assert.Equal(t, out, trimmed)

	for _, q := range []string{"", "   ", "삼", " 삼 "} {
		_, err = execute(t, "search", "--db", db, q)
		assert.Error(t, err, "query %q", q)
	}

	out, err = execute(t, "search", "--db", db, "없는회사")
	require.NoError(t, err)
	assert.Equal(t, "no results\n", out)

	out, err = execute(t, "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "companies:  4 (listed 3, unlisted 1)")
}

func TestStats_NoStore(t *testing.T) {
	_, db := writeSample(t)

	_, err := execute(t, "stats", "--db", db)
	assert.Error(t, err)
}

func TestToken(t *testing.T) {
	t.Setenv(jwtmw.EnvKeyJWTSecret, "cli-secret")

	out, err := execute(t, "token", "--subject", "ops")
	require.NoError(t, err)

	tok, err := jwt.Parse(strings.TrimSpace(out), func(*jwt.Token) (interface{}, error) {
		return []byte("cli-secret"), nil
	})
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, "ops", claims["sub"])
	assert.Equal(t, jwtmw.RoleAdmin, claims["role"])
}

func TestToken_NoSecret(t *testing.T) {
	t.Setenv(jwtmw.EnvKeyJWTSecret, "")

	_, err := execute(t, "token", "--subject", "ops")
	assert.Error(t, err)
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	out := formatReport(entity.BuildReport{TotalRecords: 98765, Listed: 3901, Unlisted: 94864})
	assert.Contains(t, out, "records:      98,765 (listed 3,901, unlisted 94,864)")
}
