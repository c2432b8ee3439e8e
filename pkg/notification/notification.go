package notification

import "fmt"

type Notification interface {
	Send(to, msg string) error
}

func SyncMessage(account string, synced, failed int) string {
	if failed == 0 {
		return fmt.Sprintf("GMC sync for account %s finished: %d products updated", account, synced)
	}
	return fmt.Sprintf("GMC sync for account %s finished: %d updated, %d failed", account, synced, failed)
}
