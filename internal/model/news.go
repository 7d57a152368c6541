package model

// NewsItem is a static security news entry shipped with the binary
type NewsItem struct {
	Title   string `json:"title" yaml:"title"`
	Date    string `json:"date" yaml:"date"` // YYYY-MM-DD
	Summary string `json:"summary" yaml:"summary"`
}

// DefaultNews returns the built-in news feed, newest first
func DefaultNews() []NewsItem {
	return []NewsItem{
		{
			Title:   "Massive SMS phishing campaign targets bank customers",
			Date:    "2025-11-10",
			Summary: "Fake transaction alerts sent via SMS with malicious links. Don't click suspicious links; verify directly with your bank.",
		},
		{
			Title:   "New credential stuffing technique spreads via leaked lists",
			Date:    "2025-11-08",
			Summary: "Attackers re-use credentials from old breaches to compromise accounts. Use unique passwords and MFA.",
		},
		{
			Title:   "Fraudsters target customers with fake refund portals",
			Date:    "2025-11-05",
			Summary: "Always verify refund links by visiting the official website, not through email or SMS links.",
		},
		{
			Title:   "SIM swap scams rise in urban centers",
			Date:    "2025-10-29",
			Summary: "Call your carrier to add a SIM PIN and avoid sharing OTPs with anyone.",
		},
	}
}

// SampleText is a demo input that trips every sensitive detector
const SampleText = "john.doe@example.com\nPassword: Secret123\nhttps://suspicious.example/login?token=xyz\nCard: 4111 1111 1111 1111"
