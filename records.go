package statement

import "github.com/etnz/statement/date"

// Record is a typed row of one section.
type Record interface {
	// Section returns the section the record belongs to.
	Section() SectionName
	// SourceLine returns the 1-based line the record was built from.
	SourceLine() int
}

// dated records carry a date that must not be null.
type dated interface {
	Record
	RecordDate() date.Date
}

// amounted records contribute to their section checksum.
type amounted interface {
	Record
	ChecksumAmount() Money
}

// InfoField is a name/value pair of the Statement or Account Information sections.
type InfoField struct {
	Line  int         `json:"line" yaml:"line"`
	From  SectionName `json:"-" yaml:"-"`
	Name  string      `json:"name" yaml:"name"`
	Value string      `json:"value" yaml:"value"`
}

// NAVLine is one asset class of the Net Asset Value section. Amounts are in the
// base currency.
type NAVLine struct {
	Line         int    `json:"line" yaml:"line"`
	AssetClass   string `json:"assetClass" yaml:"assetClass"`
	PriorTotal   Money  `json:"priorTotal" yaml:"priorTotal"`
	CurrentLong  Money  `json:"currentLong" yaml:"currentLong"`
	CurrentShort Money  `json:"currentShort" yaml:"currentShort"`
	CurrentTotal Money  `json:"currentTotal" yaml:"currentTotal"`
	Change       Money  `json:"change" yaml:"change"`
	// Reconcilable is true when prior total, change and current total were all printed.
	Reconcilable bool `json:"reconcilable" yaml:"reconcilable"`
}

// Trade is one execution of the Trades section.
type Trade struct {
	Line          int       `json:"line" yaml:"line"`
	AssetCategory string    `json:"assetCategory,omitempty" yaml:"assetCategory,omitempty"`
	Currency      string    `json:"currency" yaml:"currency"`
	Symbol        string    `json:"symbol" yaml:"symbol"`
	Date          date.Date `json:"date" yaml:"date"`
	Quantity      Quantity  `json:"quantity" yaml:"quantity"`
	Price         Money     `json:"price" yaml:"price"`
	Proceeds      Money     `json:"proceeds" yaml:"proceeds"`
	Commission    Money     `json:"commission" yaml:"commission"`
	Basis         Money     `json:"basis" yaml:"basis"`
	RealizedPL    Money     `json:"realizedPL" yaml:"realizedPL"`
	Code          string    `json:"code,omitempty" yaml:"code,omitempty"`
}

// Dividend is a cash dividend.
type Dividend struct {
	Line        int       `json:"line" yaml:"line"`
	Currency    string    `json:"currency" yaml:"currency"`
	Date        date.Date `json:"date" yaml:"date"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Symbol      string    `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	ISIN        string    `json:"isin,omitempty" yaml:"isin,omitempty"`
	Amount      Money     `json:"amount" yaml:"amount"`
}

// WithholdingTax is a tax withheld at source. Amount is the magnitude of the tax.
type WithholdingTax struct {
	Line        int       `json:"line" yaml:"line"`
	Currency    string    `json:"currency" yaml:"currency"`
	Date        date.Date `json:"date" yaml:"date"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Symbol      string    `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	ISIN        string    `json:"isin,omitempty" yaml:"isin,omitempty"`
	Country     string    `json:"country,omitempty" yaml:"country,omitempty"`
	Code        string    `json:"code,omitempty" yaml:"code,omitempty"`
	Amount      Money     `json:"amount" yaml:"amount"`
}

// Interest is a credit or debit interest line.
type Interest struct {
	Line        int       `json:"line" yaml:"line"`
	Currency    string    `json:"currency" yaml:"currency"`
	Date        date.Date `json:"date" yaml:"date"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Amount      Money     `json:"amount" yaml:"amount"`
}

// Fee is an account fee, like market data or activity fees. Amount is the
// magnitude of the fee.
type Fee struct {
	Line        int       `json:"line" yaml:"line"`
	Subtitle    string    `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Currency    string    `json:"currency" yaml:"currency"`
	Date        date.Date `json:"date" yaml:"date"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Amount      Money     `json:"amount" yaml:"amount"`
}

// OpenPosition is a holding at the end of the period.
type OpenPosition struct {
	Line          int      `json:"line" yaml:"line"`
	AssetCategory string   `json:"assetCategory,omitempty" yaml:"assetCategory,omitempty"`
	Currency      string   `json:"currency" yaml:"currency"`
	Symbol        string   `json:"symbol" yaml:"symbol"`
	Quantity      Quantity `json:"quantity" yaml:"quantity"`
	Multiplier    Quantity `json:"multiplier" yaml:"multiplier"`
	CostPrice     Money    `json:"costPrice" yaml:"costPrice"`
	CostBasis     Money    `json:"costBasis" yaml:"costBasis"`
	ClosePrice    Money    `json:"closePrice" yaml:"closePrice"`
	Value         Money    `json:"value" yaml:"value"`
	UnrealizedPL  Money    `json:"unrealizedPL" yaml:"unrealizedPL"`
}

// ForexBalance is a cash balance held in a currency.
type ForexBalance struct {
	Line          int      `json:"line" yaml:"line"`
	AssetCategory string   `json:"assetCategory,omitempty" yaml:"assetCategory,omitempty"`
	Currency      string   `json:"currency" yaml:"currency"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	Quantity      Quantity `json:"quantity" yaml:"quantity"`
	CostPrice     Money    `json:"costPrice" yaml:"costPrice"`
	CostBasis     Money    `json:"costBasis" yaml:"costBasis"`
	ClosePrice    Money    `json:"closePrice" yaml:"closePrice"`
	Value         Money    `json:"value" yaml:"value"`
	UnrealizedPL  Money    `json:"unrealizedPL" yaml:"unrealizedPL"`
}

// CashReportLine is one line of the Cash Report, like "Starting Cash" or "Ending Cash".
type CashReportLine struct {
	Line       int    `json:"line" yaml:"line"`
	Summary    string `json:"summary" yaml:"summary"`
	Currency   string `json:"currency" yaml:"currency"`
	Total      Money  `json:"total" yaml:"total"`
	Securities Money  `json:"securities" yaml:"securities"`
	Futures    Money  `json:"futures" yaml:"futures"`
}

// SecurityLoan is a securities lending activity.
type SecurityLoan struct {
	Line     int       `json:"line" yaml:"line"`
	Currency string    `json:"currency" yaml:"currency"`
	Symbol   string    `json:"symbol" yaml:"symbol"`
	Date     date.Date `json:"date" yaml:"date"`
	Quantity Quantity  `json:"quantity" yaml:"quantity"`
	Amount   Money     `json:"amount" yaml:"amount"`
}

func (r InfoField) Section() SectionName      { return r.From }
func (r NAVLine) Section() SectionName        { return SectionNetAssetValue }
func (r Trade) Section() SectionName          { return SectionTrades }
func (r Dividend) Section() SectionName       { return SectionDividends }
func (r WithholdingTax) Section() SectionName { return SectionWithholdingTax }
func (r Interest) Section() SectionName       { return SectionInterest }
func (r Fee) Section() SectionName            { return SectionFees }
func (r OpenPosition) Section() SectionName   { return SectionOpenPositions }
func (r ForexBalance) Section() SectionName   { return SectionForexBalances }
func (r CashReportLine) Section() SectionName { return SectionCashReport }
func (r SecurityLoan) Section() SectionName   { return SectionSecuritiesLending }

func (r InfoField) SourceLine() int      { return r.Line }
func (r NAVLine) SourceLine() int        { return r.Line }
func (r Trade) SourceLine() int          { return r.Line }
func (r Dividend) SourceLine() int       { return r.Line }
func (r WithholdingTax) SourceLine() int { return r.Line }
func (r Interest) SourceLine() int       { return r.Line }
func (r Fee) SourceLine() int            { return r.Line }
func (r OpenPosition) SourceLine() int   { return r.Line }
func (r ForexBalance) SourceLine() int   { return r.Line }
func (r CashReportLine) SourceLine() int { return r.Line }
func (r SecurityLoan) SourceLine() int   { return r.Line }

func (r Trade) RecordDate() date.Date          { return r.Date }
func (r Dividend) RecordDate() date.Date       { return r.Date }
func (r WithholdingTax) RecordDate() date.Date { return r.Date }
func (r Interest) RecordDate() date.Date       { return r.Date }
func (r Fee) RecordDate() date.Date            { return r.Date }
func (r SecurityLoan) RecordDate() date.Date   { return r.Date }

func (r NAVLine) ChecksumAmount() Money        { return r.CurrentTotal }
func (r Trade) ChecksumAmount() Money          { return r.Proceeds }
func (r Dividend) ChecksumAmount() Money       { return r.Amount }
func (r WithholdingTax) ChecksumAmount() Money { return r.Amount }
func (r Interest) ChecksumAmount() Money       { return r.Amount }
func (r Fee) ChecksumAmount() Money            { return r.Amount }
func (r OpenPosition) ChecksumAmount() Money   { return r.Value }
func (r ForexBalance) ChecksumAmount() Money   { return r.Value }
func (r CashReportLine) ChecksumAmount() Money { return r.Total }
func (r SecurityLoan) ChecksumAmount() Money   { return r.Amount }
