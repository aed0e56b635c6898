package jobs

import "github.com/google/uuid"

/** @brief Describes a type of job */
type Type int

const (
	/**
	 * @brief A general job that does not have any specific thread requirements.
	 */
	TypeGeneral Type = 0x02
	/**
	 * @brief A resource loading job. Covers transport fetches and disk reads/writes.
	 */
	TypeResourceLoad Type = 0x04
)

/**
 * @brief Determines which job queue a job uses. The high-priority queue is always
 * exhausted first before processing the normal-priority queue, which must also
 * be exhausted before processing the low-priority queue.
 */
type Priority int

const (
	/** @brief The lowest-priority job, used for things that can wait to be done if need be. */
	PriorityLow Priority = iota
	/** @brief A normal-priority job. Should be used for medium-priority tasks such as loading assets. */
	PriorityNormal
	/** @brief The highest-priority job. Should be used sparingly, and only for time-critical operations. */
	PriorityHigh
)

/**
 * @brief Describes a job to be run.
 *
 * A job's EntryPoint executes on a worker goroutine. Awaiting a collaborator
 * there parks only that worker; the rest of the system keeps running. All
 * resource mutation belongs inside EntryPoint, so it is fully applied before
 * either callback observes it. Exactly one of OnSuccess/OnFail fires per
 * submitted job, and at most once.
 */
type Job struct {
	/** @brief The job identifier, carried in logs. */
	ID uuid.UUID
	/** @brief The type of job. */
	Type Type
	/** @brief The priority of this job. Higher priority jobs obviously run sooner. */
	Priority Priority
	/** @brief A function to be invoked when the job starts. Required. */
	EntryPoint func() error
	/** @brief A function to be invoked when the job successfully completes. Optional. */
	OnSuccess func()
	/** @brief A function to be invoked when the job fails. Optional; a nil
	 * OnFail swallows the failure apart from a log line. */
	OnFail func(error)
}

func NewJob(t Type, p Priority, entry func() error, onSuccess func(), onFail func(error)) Job {
	return Job{
		ID:         uuid.New(),
		Type:       t,
		Priority:   p,
		EntryPoint: entry,
		OnSuccess:  onSuccess,
		OnFail:     onFail,
	}
}
