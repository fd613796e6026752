package sim

// ObservationHigh is the declared upper bound of every observation component.
// Values are reported unclipped; training adapters decide how to squash them.
const ObservationHigh = 1000

// Observation is what the dispatcher sees after Reset and each Step.
// The moving-average vectors are nil under ProfileCount.
type Observation struct {
	Profile         Profile   `json:"profile"`
	TasksQueue      []int     `json:"tasks_queue"`
	MATasksDuration []float64 `json:"ma_tasks_duration,omitempty"`
	MATasksNumber   []float64 `json:"ma_tasks_number,omitempty"`
}

// Flatten concatenates the observation into one vector:
// tasks_queue, then ma_tasks_duration and ma_tasks_number when present.
func (o Observation) Flatten() []float64 {
	out := make([]float64, 0, len(o.TasksQueue)+len(o.MATasksDuration)+len(o.MATasksNumber))
	for _, d := range o.TasksQueue {
		out = append(out, float64(d))
	}
	out = append(out, o.MATasksDuration...)
	out = append(out, o.MATasksNumber...)
	return out
}

// TotalTasks returns the sum of TasksQueue.
func (o Observation) TotalTasks() int {
	return Sum(o.TasksQueue)
}

func (sim *Simulator) observation() Observation {
	obs := Observation{
		Profile:    sim.cfg.Profile,
		TasksQueue: make([]int, len(sim.Queues)),
	}
	for t := range sim.Queues {
		obs.TasksQueue[t] = sim.Queues[t].Len()
	}
	if sim.cfg.Profile != ProfileTimestamped {
		return obs
	}
	obs.MATasksDuration = make([]float64, len(sim.Queues))
	obs.MATasksNumber = make([]float64, len(sim.Queues))
	for t := range sim.Queues {
		obs.MATasksDuration[t] = sim.maDuration[t].Value
		obs.MATasksNumber[t] = sim.maNumber[t].Value
	}
	return obs
}
