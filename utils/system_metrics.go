package utils

import (
	"log"
	"time"

	"main/model"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// GetCPUUsage returns the current CPU usage as a percentage
func GetCPUUsage() float64 {
	percentage, err := cpu.Percent(time.Second, false)
	if err != nil {
		log.Printf("Error getting CPU usage: %v", err)
		return 0
	}
	if len(percentage) > 0 {
		return percentage[0]
	}
	return 0
}

// GetSystemStats samples CPU and memory for the stats endpoint.
func GetSystemStats() model.SystemStats {
	stats := model.SystemStats{
		CPUUsagePercent: GetCPUUsage(),
		CheckedAt:       time.Now(),
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryUsedMB = vm.Used / 1024 / 1024
		stats.MemoryTotalMB = vm.Total / 1024 / 1024
	} else {
		log.Printf("Error getting memory stats: %v", err)
	}
	return stats
}
