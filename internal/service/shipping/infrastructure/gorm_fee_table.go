package infrastructure

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"shipfee/internal/service/shipping/domain"
)

// ErrFeeTableNotFound 表示该市场没有启用的价格表
var ErrFeeTableNotFound = errors.New("fee table not found")

// FeeTableModel 对应数据库中的 shipping_fee_tables 表
type FeeTableModel struct {
	gorm.Model
	Market  string `gorm:"size:16;uniqueIndex:idx_market_version"`
	Version string `gorm:"size:64;uniqueIndex:idx_market_version"`
	Active  bool   `gorm:"index"`

	StandardInProvince    int64
	StandardOutOfProvince int64
	ExpressInProvince     int64
	ExpressOutOfProvince  int64

	RushBaseFee           int64
	RushIncludedKm        float64 `gorm:"type:decimal(8,3)"`
	RushPerKm             int64
	RushDefaultDistanceKm float64 `gorm:"type:decimal(8,3)"`
	RushMinDistanceKm     float64 `gorm:"type:decimal(8,3)"`
	RushMaxDistanceKm     float64 `gorm:"type:decimal(8,3)"`

	InProvinceThresholdKm float64 `gorm:"type:decimal(8,3)"`
}

// TableName 指定 GORM 应该使用的表名
func (FeeTableModel) TableName() string {
	return "shipping_fee_tables"
}

// NewMySQLDB 打开 MySQL 连接
func NewMySQLDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}
	return db, nil
}

// GormFeeTableRepository 从 MySQL 读取各市场的价格表
type GormFeeTableRepository struct {
	db *gorm.DB
}

// NewGormFeeTableRepository 创建一个新的 GORM 仓储实例
func NewGormFeeTableRepository(db *gorm.DB) *GormFeeTableRepository {
	return &GormFeeTableRepository{db: db}
}

// FindActiveByMarket 返回市场当前启用的价格表，多条启用时取最近更新的一条
func (r *GormFeeTableRepository) FindActiveByMarket(ctx context.Context, market string) (domain.FeeTable, error) {
	var model FeeTableModel
	err := r.db.WithContext(ctx).
		Where("market = ? AND active = ?", market, true).
		Order("updated_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FeeTable{}, errors.Wrapf(ErrFeeTableNotFound, "market %s", market)
		}
		return domain.FeeTable{}, errors.Wrap(err, "query fee table")
	}
	return ToDomainFeeTable(&model), nil
}

// Save 写入一个新版本的价格表，同一市场的旧版本全部停用
func (r *GormFeeTableRepository) Save(ctx context.Context, table domain.FeeTable) error {
	model := FromDomainFeeTable(table)
	model.Active = true
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&FeeTableModel{}).
			Where("market = ? AND active = ?", table.Market, true).
			Update("active", false).Error; err != nil {
			return errors.Wrap(err, "deactivate old fee tables")
		}
		if err := tx.Create(model).Error; err != nil {
			return errors.Wrap(err, "insert fee table")
		}
		return nil
	})
}

// ToDomainFeeTable 将数据库模型转换为领域模型
func ToDomainFeeTable(m *FeeTableModel) domain.FeeTable {
	return domain.FeeTable{
		Version: m.Version,
		Market:  m.Market,
		Standard: domain.TierFees{
			InProvince:    m.StandardInProvince,
			OutOfProvince: m.StandardOutOfProvince,
		},
		Express: domain.TierFees{
			InProvince:    m.ExpressInProvince,
			OutOfProvince: m.ExpressOutOfProvince,
		},
		Rush: domain.RushFees{
			BaseFee:           m.RushBaseFee,
			IncludedKm:        m.RushIncludedKm,
			PerKm:             m.RushPerKm,
			DefaultDistanceKm: m.RushDefaultDistanceKm,
			MinDistanceKm:     m.RushMinDistanceKm,
			MaxDistanceKm:     m.RushMaxDistanceKm,
		},
		InProvinceThresholdKm: m.InProvinceThresholdKm,
	}
}

// FromDomainFeeTable 将领域模型转换为数据库模型（用于插入）
func FromDomainFeeTable(t domain.FeeTable) *FeeTableModel {
	return &FeeTableModel{
		Market:                t.Market,
		Version:               t.Version,
		StandardInProvince:    t.Standard.InProvince,
		StandardOutOfProvince: t.Standard.OutOfProvince,
		ExpressInProvince:     t.Express.InProvince,
		ExpressOutOfProvince:  t.Express.OutOfProvince,
		RushBaseFee:           t.Rush.BaseFee,
		RushIncludedKm:        t.Rush.IncludedKm,
		RushPerKm:             t.Rush.PerKm,
		RushDefaultDistanceKm: t.Rush.DefaultDistanceKm,
		RushMinDistanceKm:     t.Rush.MinDistanceKm,
		RushMaxDistanceKm:     t.Rush.MaxDistanceKm,
		InProvinceThresholdKm: t.InProvinceThresholdKm,
	}
}
