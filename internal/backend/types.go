package backend

// Payload structs mirror the quant-service JSON responses. Market data rows
// (bars, chips, fund flow) arrive with string-valued numbers, exactly as the
// service stores them; they are rendered verbatim.

// StockBar is one daily OHLCV row.
type StockBar struct {
	Date   string `json:"date"`
	Open   string `json:"open"`
	High   string `json:"high"`
	Low    string `json:"low"`
	Close  string `json:"close"`
	Volume string `json:"volume"`
	Amount string `json:"amount"`
}

// StockBarsResponse is the /market/stocks/{symbol}/bars payload.
type StockBarsResponse struct {
	Symbol   string     `json:"symbol"`
	Market   string     `json:"market"`
	Ticker   string     `json:"ticker"`
	Name     string     `json:"name"`
	Currency string     `json:"currency"`
	Bars     []StockBar `json:"bars"`
}

// StockChipsItem is one day of chip-distribution data.
type StockChipsItem struct {
	Date        string `json:"date"`
	ProfitRatio string `json:"profitRatio"`
	AvgCost     string `json:"avgCost"`
	Cost90Low   string `json:"cost90Low"`
	Cost90High  string `json:"cost90High"`
	Cost90Conc  string `json:"cost90Conc"`
	Cost70Low   string `json:"cost70Low"`
	Cost70High  string `json:"cost70High"`
	Cost70Conc  string `json:"cost70Conc"`
}

// StockChipsResponse is the /market/stocks/{symbol}/chips payload.
type StockChipsResponse struct {
	Symbol   string           `json:"symbol"`
	Market   string           `json:"market"`
	Ticker   string           `json:"ticker"`
	Name     string           `json:"name"`
	Currency string           `json:"currency"`
	Items    []StockChipsItem `json:"items"`
}

// StockFundFlowItem is one day of per-stock fund-flow data.
type StockFundFlowItem struct {
	Date            string `json:"date"`
	Close           string `json:"close"`
	ChangePct       string `json:"changePct"`
	MainNetAmount   string `json:"mainNetAmount"`
	MainNetRatio    string `json:"mainNetRatio"`
	SuperNetAmount  string `json:"superNetAmount"`
	SuperNetRatio   string `json:"superNetRatio"`
	LargeNetAmount  string `json:"largeNetAmount"`
	LargeNetRatio   string `json:"largeNetRatio"`
	MediumNetAmount string `json:"mediumNetAmount"`
	MediumNetRatio  string `json:"mediumNetRatio"`
	SmallNetAmount  string `json:"smallNetAmount"`
	SmallNetRatio   string `json:"smallNetRatio"`
}

// StockFundFlowResponse is the /market/stocks/{symbol}/fund-flow payload.
type StockFundFlowResponse struct {
	Symbol   string              `json:"symbol"`
	Market   string              `json:"market"`
	Ticker   string              `json:"ticker"`
	Name     string              `json:"name"`
	Currency string              `json:"currency"`
	Items    []StockFundFlowItem `json:"items"`
}

// IndustryFlowPoint is one day of one industry's net inflow (CNY).
type IndustryFlowPoint struct {
	Date      string  `json:"date"`
	NetInflow float64 `json:"netInflow"`
}

// IndustryFlowRow is one industry's trailing fund-flow series.
type IndustryFlowRow struct {
	IndustryCode string              `json:"industryCode"`
	IndustryName string              `json:"industryName"`
	NetInflow    float64             `json:"netInflow"` // asOfDate value
	Sum10d       float64             `json:"sum10d"`
	Series10d    []IndustryFlowPoint `json:"series10d"`
}

// IndustryFlowResponse is the /market/cn/industry-fund-flow payload. Dates
// are ascending and shared across all rows' series.
type IndustryFlowResponse struct {
	AsOfDate string            `json:"asOfDate"`
	Days     int               `json:"days"`
	TopN     int               `json:"topN"`
	Dates    []string          `json:"dates"`
	Top      []IndustryFlowRow `json:"top"`
}

// SentimentItem is one day of the CN market sentiment index.
type SentimentItem struct {
	Date                    string   `json:"date"`
	UpCount                 int      `json:"upCount"`
	DownCount               int      `json:"downCount"`
	FlatCount               int      `json:"flatCount"`
	TotalCount              int      `json:"totalCount"`
	UpDownRatio             float64  `json:"upDownRatio"`
	MarketTurnoverCny       float64  `json:"marketTurnoverCny"`
	MarketVolume            float64  `json:"marketVolume"`
	YesterdayLimitUpPremium float64  `json:"yesterdayLimitUpPremium"`
	FailedLimitUpRate       float64  `json:"failedLimitUpRate"`
	RiskMode                string   `json:"riskMode"`
	Rules                   []string `json:"rules"`
	UpdatedAt               string   `json:"updatedAt"`
}

// SentimentResponse is the /market/cn/sentiment payload, items ascending.
type SentimentResponse struct {
	AsOfDate string          `json:"asOfDate"`
	Days     int             `json:"days"`
	Items    []SentimentItem `json:"items"`
}

// TVSnapshot is the /integrations/tradingview/snapshots/{id} payload. Rows
// map screener column headers to cell text.
type TVSnapshot struct {
	ID          string              `json:"id"`
	ScreenerID  string              `json:"screenerId"`
	CapturedAt  string              `json:"capturedAt"`
	RowCount    int                 `json:"rowCount"`
	ScreenTitle string              `json:"screenTitle"`
	Filters     []string            `json:"filters"`
	URL         string              `json:"url"`
	Headers     []string            `json:"headers"`
	Rows        []map[string]string `json:"rows"`
}

// BrokerExtracted is the vision-extracted content of one broker screenshot.
// Kind discriminates what data holds: "account_overview", "positions",
// "conditional_orders", or anything newer the extractor emits.
type BrokerExtracted struct {
	Kind string         `json:"kind"`
	Data map[string]any `json:"data"`
}

// BrokerSnapshot is the /broker/{broker}/snapshots/{id} payload.
type BrokerSnapshot struct {
	ID         string          `json:"id"`
	Broker     string          `json:"broker"`
	AccountID  string          `json:"accountId"`
	CapturedAt string          `json:"capturedAt"`
	Kind       string          `json:"kind"`
	CreatedAt  string          `json:"createdAt"`
	ImagePath  string          `json:"imagePath"`
	Extracted  BrokerExtracted `json:"extracted"`
}

// BrokerStateResponse is the consolidated account state from
// /broker/{broker}/accounts/{id}/state. Row shapes come from screenshot
// extraction and are loosely typed.
type BrokerStateResponse struct {
	AccountID         string           `json:"accountId"`
	Broker            string           `json:"broker"`
	UpdatedAt         string           `json:"updatedAt"`
	Overview          map[string]any   `json:"overview"`
	Positions         []map[string]any `json:"positions"`
	ConditionalOrders []map[string]any `json:"conditionalOrders"`
	Trades            []map[string]any `json:"trades"`
	Counts            map[string]int   `json:"counts"`
}

// StrategyCandidate is one scored candidate in a daily strategy report.
type StrategyCandidate struct {
	Symbol string  `json:"symbol"`
	Market string  `json:"market"`
	Ticker string  `json:"ticker"`
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Rank   int     `json:"rank"`
	Why    string  `json:"why"`
}

// StrategyLeader names the report's lead pick.
type StrategyLeader struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}

// StrategyLevels holds price levels as human-readable strings.
type StrategyLevels struct {
	Support       []string `json:"support"`
	Resistance    []string `json:"resistance"`
	Invalidations []string `json:"invalidations"`
}

// StrategyOrder is a human-readable conditional-order recipe.
type StrategyOrder struct {
	Kind        string `json:"kind"`
	Side        string `json:"side"`
	Trigger     string `json:"trigger"`
	Qty         string `json:"qty"`
	TimeInForce string `json:"timeInForce"`
	Notes       string `json:"notes"`
}

// StrategyRecommendation is one actionable recommendation in a report.
type StrategyRecommendation struct {
	Symbol         string          `json:"symbol"`
	Ticker         string          `json:"ticker"`
	Name           string          `json:"name"`
	Thesis         string          `json:"thesis"`
	Levels         StrategyLevels  `json:"levels"`
	Orders         []StrategyOrder `json:"orders"`
	PositionSizing string          `json:"positionSizing"`
	RiskNotes      []string        `json:"riskNotes"`
}

// StrategyReport is the /strategy/accounts/{id}/daily payload.
type StrategyReport struct {
	ID              string                   `json:"id"`
	Date            string                   `json:"date"`
	AccountID       string                   `json:"accountId"`
	AccountTitle    string                   `json:"accountTitle"`
	CreatedAt       string                   `json:"createdAt"`
	Model           string                   `json:"model"`
	Markdown        string                   `json:"markdown"`
	Candidates      []StrategyCandidate      `json:"candidates"`
	Leader          StrategyLeader           `json:"leader"`
	Recommendations []StrategyRecommendation `json:"recommendations"`
	RiskNotes       []string                 `json:"riskNotes"`
}

// LeaderBuyZone is a leader pick's suggested entry band.
type LeaderBuyZone struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
	Note string  `json:"note"`
}

// LeaderTargetPrice holds a leader pick's price targets.
type LeaderTargetPrice struct {
	Primary float64 `json:"primary"`
	Stretch float64 `json:"stretch"`
}

// LeaderStock is one leader pick for one day.
type LeaderStock struct {
	Date                 string             `json:"date"`
	Symbol               string             `json:"symbol"`
	Market               string             `json:"market"`
	Ticker               string             `json:"ticker"`
	Name                 string             `json:"name"`
	Score                float64            `json:"score"`
	Reason               string             `json:"reason"`
	WhyBullets           []string           `json:"whyBullets"`
	ExpectedDurationDays int                `json:"expectedDurationDays"`
	BuyZone              *LeaderBuyZone     `json:"buyZone"`
	Triggers             []map[string]any   `json:"triggers"`
	Invalidation         string             `json:"invalidation"`
	TargetPrice          *LeaderTargetPrice `json:"targetPrice"`
	Probability          float64            `json:"probability"`
	Risks                []string           `json:"risks"`
}

// LeaderStocksResponse is the /leader payload.
type LeaderStocksResponse struct {
	Leaders []LeaderStock `json:"leaders"`
}
