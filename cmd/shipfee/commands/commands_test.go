package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipfee/internal/service/shipping/application"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	// 不存在的配置文件，使用默认价格表
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestQuoteCmd_Stdin(t *testing.T) {
	cart := `{"method":"standard","destination":{"coordinate":{"lat":21.0285,"lng":105.8542}},
		"sellers":[{"sellerId":"a","shop":{"coordinate":{"lat":21.0285,"lng":105.8542}}},
		           {"sellerId":"b","shop":{"coordinate":{"lat":10.8231,"lng":106.6297}}}]}`

	out, err := run(t, cart, "quote")
	require.NoError(t, err)

	var resp application.QuoteResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, int64(40000), resp.Summary.TotalShippingFee)
	assert.Len(t, resp.Summary.Breakdown, 2)
}

func TestQuoteCmd_FileAndMethodOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"method":"standard","sellers":[{"sellerId":"a"}]}`), 0o600))

	out, err := run(t, "", "quote", "--cart", path, "-m", "rush")
	require.NoError(t, err)

	var resp application.QuoteResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, int64(65000), resp.Summary.TotalShippingFee)
	assert.True(t, resp.Summary.Breakdown[0].UsedFallbackDistance)
}

func TestQuoteCmd_EmptyCart(t *testing.T) {
	_, err := run(t, `{"method":"standard"}`, "quote")
	assert.ErrorIs(t, err, application.ErrEmptyCart)
}

func TestTableCmd(t *testing.T) {
	out, err := run(t, "", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "in_province: 12000")
	assert.Contains(t, out, "# ok")
}

func TestDistanceCmd(t *testing.T) {
	out, err := run(t, "", "distance", "21.0285", "105.8542", "21.0285", "105.8542")
	require.NoError(t, err)
	assert.Equal(t, "0.000\n", out)

	_, err = run(t, "", "distance", "a", "1", "2", "3")
	assert.Error(t, err)
}

func TestTablePublishCmd_RejectsBeforeStoring(t *testing.T) {
	t.Setenv("MYSQL_DSN", "")
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("standard:\n  in_province: 50000\n  out_of_province: 28000\n"), 0o644))
	_, err := run(t, "", "table", "publish", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "standard_in_cheaper")

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("version: v2\nstandard:\n  in_province: 15000\n"), 0o644))
	_, err = run(t, "", "table", "publish", good)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no mysql dsn")
}
