package dashboard

import (
	"slices"

	"github.com/bft-labs/builderstore/pkg/store"
)

// MaxNotifications bounds the banner list; the oldest entries drop first.
const MaxNotifications = 20

// Notifications is the banner slice, newest first.
type Notifications struct {
	Items []Notification
}

// ReduceNotifications owns the notifications slice.
func ReduceNotifications(s *Notifications, a store.Action) *Notifications {
	switch a.Kind {
	case KindNotificationAdd:
		n := payloadOf[Notification](a)
		keep := min(len(s.Items), MaxNotifications-1)
		items := make([]Notification, 0, keep+1)
		items = append(items, n)
		items = append(items, s.Items[:keep]...)
		return &Notifications{Items: items}
	case KindNotificationRemove:
		id := payloadOf[NotificationRef](a).ID
		i := slices.IndexFunc(s.Items, func(n Notification) bool { return n.ID == id })
		if i < 0 {
			return s
		}
		return &Notifications{Items: slices.Delete(slices.Clone(s.Items), i, i+1)}
	}
	return s
}
