package util

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Secrets is the deploy-time configuration read from secrets.json: the FMP
// api key, the holdings sheet csv export url, and which provider to use
// ("fmp" or "yahoo").
type Secrets struct {
	FMPApiKey   string `json:"fmpApiKey"`
	HoldingsURL string `json:"holdingsUrl"`
	Provider    string `json:"provider"`
}

func LoadSecrets() (*Secrets, error) {
	secretsFile := "secrets.json"
	if override := os.Getenv("PULSE_SECRETS_FILE"); override != "" {
		secretsFile = override
	}
	f, err := os.ReadFile(secretsFile)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", secretsFile, err)
	}

	secrets := Secrets{}
	err = json.Unmarshal(f, &secrets)
	if err != nil {
		return nil, err
	}

	return &secrets, nil
}

// Round2 rounds to two decimal places for display values.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
