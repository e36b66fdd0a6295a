package auth

import (
	"context"
	"log"
	"time"

	"blog/internal/store"
)

// SweepExpiredSessions deletes expired sessions every interval until ctx is
// cancelled.
func SweepExpiredSessions(ctx context.Context, st *store.Store, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := st.DeleteExpiredSessions(ctx, time.Now())
			if err != nil {
				log.Printf("auth: sweep sessions: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("auth: swept %d expired sessions", n)
			}
		}
	}
}
