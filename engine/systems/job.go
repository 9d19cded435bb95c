package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/navview/engine/core"
)

/** @brief Runs on a worker goroutine. The returned value is handed to OnComplete. */
type JobStart func(params interface{}) (interface{}, error)

/**
 * @brief Describes a job to be run. Only OnStart is required.
 */
type JobTask struct {
	/** @brief Shown in logs. */
	Name        string
	InputParams interface{}
	OnStart     JobStart
	/** @brief Invoked by Update on success, never on a worker. */
	OnComplete func(result interface{})
	/** @brief Invoked by Update on failure, never on a worker. */
	OnFailure func(err error)
}

type jobResult struct {
	task   JobTask
	result interface{}
	err    error
}

// JobSystem runs CPU work on a fixed set of workers. Completion callbacks are
// queued and run by Update, so they can touch state owned by the main thread
// such as GPU buffers.
type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup

	mutex    sync.RWMutex
	isClosed bool

	resultsMutex sync.Mutex
	results      []jobResult
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")
var ErrJobSystemClosed = fmt.Errorf("job system is shut down")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	jq := make(chan JobTask, channelSize)
	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   jq,
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				result, err := job.OnStart(job.InputParams)
				if err != nil {
					core.LogError("job `%s` failed: %s", job.Name, err)
				}
				js.resultsMutex.Lock()
				js.results = append(js.results, jobResult{task: job, result: result, err: err})
				js.resultsMutex.Unlock()
			}
		}()
	}
}

/**
 * @brief Shuts the job system down. Queued jobs still run, their callbacks
 * are dropped. Calling it again does nothing.
 */
func (js *JobSystem) Shutdown() error {
	js.mutex.Lock()
	if js.isClosed {
		js.mutex.Unlock()
		return nil
	}
	js.isClosed = true
	close(js.jobQueue)
	js.mutex.Unlock()

	js.wg.Wait()

	js.resultsMutex.Lock()
	js.results = nil
	js.resultsMutex.Unlock()
	return nil
}

/**
 * @brief Runs the callbacks of the jobs finished since the last call and
 * returns how many there were. Should happen once an update cycle.
 */
func (js *JobSystem) Update() int {
	js.resultsMutex.Lock()
	done := js.results
	js.results = nil
	js.resultsMutex.Unlock()

	for _, r := range done {
		if r.err != nil {
			if r.task.OnFailure != nil {
				r.task.OnFailure(r.err)
			}
			continue
		}
		if r.task.OnComplete != nil {
			r.task.OnComplete(r.result)
		}
	}
	return len(done)
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while
 * the queue is full.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	if jt.OnStart == nil {
		return fmt.Errorf("job `%s` has no entry point", jt.Name)
	}
	js.mutex.RLock()
	defer js.mutex.RUnlock()
	if js.isClosed {
		return ErrJobSystemClosed
	}
	js.jobQueue <- jt
	return nil
}
