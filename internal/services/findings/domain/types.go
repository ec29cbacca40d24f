// Package domain defines the findings (alerts) emitted by the spoofing detector
package domain

import (
	"strings"
	"time"
)

// Finding kinds and severities
const (
	TypeSuspicious = "suspicious"
	SeverityLow    = "low"
)

// Finding is one alert: ImpersonatingName registered by ImpersonatingAccount
// looks like OriginalName, which resolved to OriginalAccount at BlockNumber
type Finding struct {
	ID          string            `json:"id"`
	AlertID     string            `json:"alertId"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Type        string            `json:"type"`
	Severity    string            `json:"severity"`
	Addresses   []string          `json:"addresses"`
	Metadata    map[string]string `json:"metadata"`

	OriginalName         string `json:"originalName"`
	OriginalAccount      string `json:"originalAccount"`
	ImpersonatingName    string `json:"impersonatingName"`
	ImpersonatingAccount string `json:"impersonatingAccount"`

	BlockNumber uint64    `json:"blockNumber"`
	TxHash      string    `json:"txHash,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Metadata is the alert metadata block; accounts are lowercase hex
func Metadata(f Finding) map[string]string {
	return map[string]string{
		"legitName":            f.OriginalName,
		"legitAccount":         strings.ToLower(f.OriginalAccount),
		"impersonatingName":    f.ImpersonatingName,
		"impersonatingAccount": strings.ToLower(f.ImpersonatingAccount),
	}
}
