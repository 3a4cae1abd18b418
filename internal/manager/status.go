package manager

import (
	"time"

	"whisperd/pkg/types"
)

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	resp := types.StatusResponse{
		DefaultModel:        m.defaultModel,
		Device:              m.device,
		ComputeType:         m.computeType,
		LastError:           m.lastErr,
		UptimeSeconds:       int64(time.Since(m.startTime).Seconds()),
		ServerTimeUnix:      time.Now().Unix(),
		LoadsTotal:          m.loadsTotal,
		LoadFailuresTotal:   m.loadFailuresTotal,
		TranscriptionsTotal: m.transcriptionsTotal,
	}
	resp.Instances = make([]types.InstanceStatus, 0, len(m.instances))
	for _, inst := range m.instances {
		resp.Instances = append(resp.Instances, types.InstanceStatus{
			ModelID:       inst.ID,
			State:         string(inst.State),
			Compute:       inst.Compute,
			LastUsed:      inst.LastUsed.Unix(),
			LoadAttempts:  inst.LoadAttempts,
			QueueLen:      len(inst.queueCh),
			Inflight:      len(inst.genCh),
			MaxQueueDepth: cap(inst.queueCh),
		})
	}
	return resp
}
