package model

import "time"

type SystemStats struct {
	CPUUsagePercent float64   `json:"cpu_usage_percent"`
	MemoryUsedMB    uint64    `json:"memory_used_mb"`
	MemoryTotalMB   uint64    `json:"memory_total_mb"`
	CheckedAt       time.Time `json:"checked_at"`
}

type UserStats struct {
	Email        string      `json:"email"`
	MemberSince  time.Time   `json:"member_since"`
	TotalPrompts int         `json:"total_prompts"`
	System       SystemStats `json:"system"`
}
