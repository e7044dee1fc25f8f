package jobs

type JobType string

const (
	// JobNotifyAccount writes one notification for a single account.
	JobNotifyAccount JobType = "notification.account"
	// JobNotifyBroadcast writes the same notification for every account.
	JobNotifyBroadcast JobType = "notification.broadcast"
	// JobNotifyStudent notifies a student's own account and its guardian.
	JobNotifyStudent JobType = "notification.student"
)

// check to see if the job type is a known constant
func (t JobType) IsValid() bool {
	switch t {
	case JobNotifyAccount, JobNotifyBroadcast, JobNotifyStudent:
		return true
	default:
		return false
	}
}
