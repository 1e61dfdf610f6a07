package domain

import "strings"

// sectorLabels maps the provider's sector taxonomy to the Korean display
// labels the dashboard uses. FMP reports "Financial Services" on newer
// payloads and "Financial" on older ones; both map to the same label.
var sectorLabels = map[string]string{
	"Technology":             "기술주",
	"Communication Services": "통신 서비스",
	"Consumer Cyclical":      "경기 소비재",
	"Financial Services":     "금융",
	"Financial":              "금융",
	"Healthcare":             "헬스케어",
	"Consumer Defensive":     "필수 소비재",
	"Energy":                 "에너지",
	"Industrials":            "산업재",
	"Basic Materials":        "기초 소재",
	"Real Estate":            "부동산",
	"Utilities":              "유틸리티",
}

// SectorFallback is the display label for missing or unmapped sectors (ETFs
// mostly have no sector in FMP profiles).
const SectorFallback = "기타/ETF"

// LocalizedSector translates a provider sector into its display label,
// falling back to SectorFallback for anything unknown.
func LocalizedSector(providerSector string) string {
	if label, ok := sectorLabels[strings.TrimSpace(providerSector)]; ok {
		return label
	}
	return SectorFallback
}
