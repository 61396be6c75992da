// internal/models/analysis.go
package models

import (
	"github.com/lib/pq"
)

// Analysis is one scored market snapshot for a keyword.
type Analysis struct {
	BaseModel
	Keyword          string         `json:"keyword" gorm:"size:255;not null;index"`
	Verdict          string         `json:"verdict" gorm:"size:10;not null;index"`
	OpportunityScore int            `json:"opportunity_score" gorm:"not null"`
	DemandScore      float64        `json:"demand_score" gorm:"type:decimal(4,1)"`
	CompetitionScore float64        `json:"competition_score" gorm:"type:decimal(4,1)"`
	Dominance        float64        `json:"dominance" gorm:"type:decimal(5,1)"`
	PLViability      float64        `json:"pl_viability" gorm:"type:decimal(4,1)"`
	TotalRevenue     float64        `json:"total_revenue" gorm:"type:decimal(14,2)"`
	TotalSales       int            `json:"total_sales"`
	AvgPrice         float64        `json:"avg_price" gorm:"type:decimal(10,2)"`
	SellerCount      int            `json:"seller_count"`
	TopSeller        string         `json:"top_seller" gorm:"size:255"`
	TopBrands        pq.StringArray `json:"top_brands" gorm:"type:text[]"`
	MarketStatus     string         `json:"market_status" gorm:"size:20"`
	DataSource       DataSource     `json:"data_source" gorm:"type:varchar(20);index"`
	Snapshot         JSONB          `json:"snapshot,omitempty" gorm:"type:jsonb"`
}

func (Analysis) TableName() string {
	return "analyses"
}
