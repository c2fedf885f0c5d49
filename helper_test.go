package statement

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

// USD is a helper for test to create usd money from const
func USD(v string) Money { return M(decimal.RequireFromString(v), "USD") }

// CHF is a helper for test to create chf money from const
func CHF(v string) Money { return M(decimal.RequireFromString(v), "CHF") }

// statementOf joins lines into statement content, one row per line.
func statementOf(lines ...string) []byte { return []byte(strings.Join(lines, "\n") + "\n") }

// minimalStatement holds one trade and one dividend.
var minimalStatement = statementOf(
	"Trades,Header,Currency,Symbol,Quantity",
	"Trades,Data,USD,AAPL,10",
	"Dividends,Header,Currency,Amount",
	"Dividends,Data,USD,24.00",
)

// fullStatement is shaped like a complete broker export: every known section,
// summary rows, lot details and an unknown section.
var fullStatement = statementOf(
	"Statement,Header,Field Name,Field Value",
	"Statement,Data,BrokerName,Interactive Brokers LLC",
	"Statement,Data,Title,Activity Statement",
	`Statement,Data,Period,"January 1, 2025 - December 31, 2025"`,
	`Statement,Data,WhenGenerated,"2026-01-05, 10:12:44 EST"`,
	"Account Information,Header,Field Name,Field Value",
	"Account Information,Data,Name,Jane Doe",
	"Account Information,Data,Account,U1234567",
	"Account Information,Data,Account Type,Individual",
	"Account Information,Data,Base Currency,CHF",
	"Net Asset Value,Header,Asset Class,Prior Total,Current Long,Current Short,Current Total,Change",
	"Net Asset Value,Data,Cash,50000.00,52000.00,0,52000.00,2000.00",
	"Net Asset Value,Data,Stock,100000.00,110000.00,0,110000.00,10000.00",
	"Net Asset Value,Data,Total,150000.00,162000.00,0,162000.00,12000.00",
	"Trades,Header,DataDiscriminator,Asset Category,Currency,Symbol,Date/Time,Quantity,T. Price,C. Price,Proceeds,Comm/Fee,Basis,Realized P/L,MTM P/L,Code",
	`Trades,Data,Order,Stocks,USD,AAPL,"2025-03-14, 10:30:00",10,150.00,151.00,-1500.00,-1.00,1501.00,0,10.00,O`,
	`Trades,Data,Order,Stocks,USD,MSFT,"2025-06-02, 15:45:10",-5,400.00,401.00,2000.00,-1.00,-1800.00,199.00,-5.00,C`,
	"Trades,SubTotal,,Stocks,USD,,,,,,500.00,-2.00,,199.00,,",
	"Trades,Total,,Stocks,USD,,,,,,500.00,-2.00,,199.00,,",
	"Dividends,Header,Currency,Date,Description,Amount",
	"Dividends,Data,USD,2025-05-15,AAPL(US0378331005) Cash Dividend USD 0.25 per Share (Ordinary Dividend),2.50",
	"Dividends,Data,USD,2025-06-12,MSFT(US5949181045) Cash Dividend USD 0.83 per Share (Ordinary Dividend),4.15",
	"Dividends,Data,Total,,,6.65",
	"Withholding Tax,Header,Currency,Date,Description,Amount,Code",
	"Withholding Tax,Data,USD,2025-05-15,AAPL(US0378331005) Cash Dividend USD 0.25 per Share - US Tax,-0.38,",
	"Withholding Tax,Data,USD,2025-06-12,MSFT(US5949181045) Cash Dividend USD 0.83 per Share - US Tax,-0.62,",
	"Withholding Tax,Data,Total,,,-1.00,",
	"Interest,Header,Currency,Date,Description,Amount",
	"Interest,Data,CHF,2025-07-03,CHF Credit Interest for Jun-2025,12.40",
	"Interest,Data,USD,2025-07-03,USD Debit Interest for Jun-2025,(3.10)",
	"Fees,Header,Subtitle,Currency,Date,Description,Amount",
	"Fees,Data,Other Fees,USD,2025-04-03,Market data subscription,-10.00",
	"Fees,Data,Total,,,,-10.00",
	"Open Positions,Header,DataDiscriminator,Asset Category,Currency,Symbol,Quantity,Mult,Cost Price,Cost Basis,Close Price,Value,Unrealized P/L,Code",
	"Open Positions,Data,Summary,Stocks,USD,AAPL,10,1,150.10,1501.00,250.00,2500.00,999.00,",
	"Open Positions,Data,Lot,Stocks,USD,AAPL,10,1,150.10,1501.00,250.00,2500.00,999.00,",
	"Open Positions,Total,,Stocks,USD,,,,,1501.00,,2500.00,999.00,",
	"Forex Balances,Header,Asset Category,Currency,Description,Quantity,Cost Price,Cost Basis in CHF,Close Price,Value in CHF,Unrealized P/L in CHF,Code",
	"Forex Balances,Data,Forex,USD,USD,1000.00,0.91,-910.00,0.90,900.00,-10.00,",
	"Cash Report,Header,Currency Summary,Currency,Total,Securities,Futures,",
	"Cash Report,Data,Starting Cash,Base Currency Summary,1000.00,1000.00,0,",
	"Cash Report,Data,Ending Cash,USD,1200.00,1200.00,0,",
	"Securities Lending,Header,Currency,Symbol,Date,Quantity,Amount",
	"Securities Lending,Data,USD,AAPL,2025-08-01,5,0.12",
	"Codes,Header,Code,Meaning",
	"Codes,Data,O,Opening Trade",
	"Codes,Data,C,Closing Trade",
)

// mustParse parses content and fails the test on error.
func mustParse(t *testing.T, content []byte, opts ...Option) *Result {
	t.Helper()
	res, err := Parse(content, opts...)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	return res
}

// messages returns the messages of the diagnostics, for error output.
func messages(ds Diagnostics) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}

// hasDiagnostic reports whether ds has a diagnostic of sev for section whose message contains part.
func hasDiagnostic(ds Diagnostics, sev Severity, section SectionName, part string) bool {
	for _, d := range ds {
		if d.Severity == sev && d.Section == section && strings.Contains(d.Message, part) {
			return true
		}
	}
	return false
}
