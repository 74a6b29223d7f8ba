package infrastructure

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipfee/internal/service/shipping/domain"
)

const nacosTable = `
version: "2026-11-01"
express:
  in_province: 25000
  out_of_province: 45000
rush:
  per_km: 8000
`

func TestParseFeeTable_OverlaysBase(t *testing.T) {
	table, err := ParseFeeTable([]byte(nacosTable), domain.DefaultFeeTable())
	require.NoError(t, err)

	assert.Equal(t, "2026-11-01", table.Version)
	assert.Equal(t, int64(25000), table.Express.InProvince)
	assert.Equal(t, int64(8000), table.Rush.PerKm)
	assert.Equal(t, int64(12000), table.Standard.InProvince)
	assert.Equal(t, 30.0, table.InProvinceThresholdKm)
}

func TestParseFeeTable_Invalid(t *testing.T) {
	base := domain.DefaultFeeTable()
	table, err := ParseFeeTable([]byte("rush: [oops"), base)
	assert.Error(t, err)
	assert.Equal(t, base, table)
}

func TestFeeTableModelMapping(t *testing.T) {
	table := domain.DefaultFeeTable()
	table.Version = "v7"

	model := FromDomainFeeTable(table)
	assert.Equal(t, "vn", model.Market)
	assert.Equal(t, int64(42000), model.ExpressOutOfProvince)
	assert.Equal(t, 150.0, model.RushMaxDistanceKm)
	assert.Equal(t, "shipping_fee_tables", model.TableName())

	assert.Equal(t, table, ToDomainFeeTable(model))
}

type fakeConfigSource struct {
	content  string
	getErr   error
	listener func(string)
}

func (f *fakeConfigSource) GetConfig(dataID string) (string, error) {
	return f.content, f.getErr
}

func (f *fakeConfigSource) ListenConfig(dataID string, onChange func(string)) error {
	f.listener = onChange
	return nil
}

type recordingUpdater struct {
	tables []domain.FeeTable
	reject bool
}

func (u *recordingUpdater) Update(table domain.FeeTable) error {
	if u.reject {
		return errors.New("rejected")
	}
	u.tables = append(u.tables, table)
	return nil
}

func TestNacosFeeTableSource_LoadAndListen(t *testing.T) {
	src := &fakeConfigSource{content: nacosTable}
	updater := &recordingUpdater{}

	s := NewNacosFeeTableSource(src, "shipping-fee-table.yaml", domain.DefaultFeeTable(), updater)
	require.NoError(t, s.Start())
	require.Len(t, updater.tables, 1)
	assert.Equal(t, "2026-11-01", updater.tables[0].Version)
	require.NotNil(t, src.listener)

	src.listener("version: \"2026-11-02\"\n")
	require.Len(t, updater.tables, 2)
	assert.Equal(t, "2026-11-02", updater.tables[1].Version)
	// 每次变更都以 base 为底，不继承上一版的覆盖
	assert.Equal(t, int64(22000), updater.tables[1].Express.InProvince)

	// 坏配置被忽略
	src.listener("")
	src.listener("rush: [")
	assert.Len(t, updater.tables, 2)
}

func TestNacosFeeTableSource_StartErrors(t *testing.T) {
	s := NewNacosFeeTableSource(&fakeConfigSource{getErr: errors.New("nacos down")}, "x", domain.DefaultFeeTable(), &recordingUpdater{})
	assert.Error(t, s.Start())

	s = NewNacosFeeTableSource(&fakeConfigSource{content: "  "}, "x", domain.DefaultFeeTable(), &recordingUpdater{})
	assert.Error(t, s.Start())

	s = NewNacosFeeTableSource(&fakeConfigSource{content: nacosTable}, "x", domain.DefaultFeeTable(), &recordingUpdater{reject: true})
	assert.Error(t, s.Start())
}
