package orders

import "wareflow/internal/domain"

// Badge labels as rendered.
const (
	LabelProject   = "Projekt"
	LabelStock     = "Lager"
	LabelArchived  = "Archiviert"
	LabelCancelled = "STORNIERT"
	LabelDone      = "Erledigt"
	LabelOpen      = "Offen"
	LabelPartial   = "Teillieferung"
	LabelOverage   = "Übermenge"
	LabelChecking  = "In Prüfung"
	LabelDamage    = "Schaden"
)

// BadgeKind groups badges by the question they answer.
type BadgeKind int

const (
	BadgeIdentity BadgeKind = iota
	BadgeLifecycle
	BadgeProcess
	BadgeDelivery
)

// Tone is the semantic colour of a badge.
type Tone int

const (
	ToneNeutral Tone = iota
	ToneInfo
	ToneSuccess
	ToneWarning
	ToneDanger
	ToneMuted
)

// Badge is one rendered label.
type Badge struct {
	Label string
	Kind  BadgeKind
	Tone  Tone
}

// PrimaryBadges returns the order-list badges in display order: identity,
// lifecycle (absent when nothing was ordered) and receipt processing.
func PrimaryBadges(o domain.PurchaseOrder, link ReceiptLink) []Badge {
	badges := make([]Badge, 0, 3)
	badges = append(badges, identityBadge(o))
	if b, ok := lifecycleBadge(o); ok {
		badges = append(badges, b)
	}
	if r, ok := link.Linked(); ok {
		switch {
		case r.IsChecking():
			badges = append(badges, Badge{Label: LabelChecking, Kind: BadgeProcess, Tone: ToneInfo})
		case r.IsDamaged():
			badges = append(badges, Badge{Label: LabelDamage, Kind: BadgeProcess, Tone: ToneDanger})
		}
	}
	return badges
}

// DiagnosticBadges returns the inspector badges. Identity and lifecycle match
// PrimaryBadges; receipt processing also covers pending links, and delivery
// lines contribute overage and damage. No label appears twice.
func DiagnosticBadges(o domain.PurchaseOrder, link ReceiptLink) []Badge {
	set := newBadgeSet()
	set.add(identityBadge(o))
	if b, ok := lifecycleBadge(o); ok {
		set.add(b)
	}

	r, linked := link.Linked()
	checking := linked && r.IsChecking()
	if link.State == LinkPending && !isProcessed(o) {
		checking = true
	}
	if checking {
		set.add(Badge{Label: LabelChecking, Kind: BadgeProcess, Tone: ToneInfo})
	}
	if !linked {
		return set.badges
	}
	if r.IsDamaged() {
		set.add(Badge{Label: LabelDamage, Kind: BadgeProcess, Tone: ToneDanger})
	}
	if r.HasOverageLine() && allItemsReceived(o) {
		set.add(Badge{Label: LabelOverage, Kind: BadgeDelivery, Tone: ToneWarning})
	}
	if r.HasDamagedLine() {
		set.add(Badge{Label: LabelDamage, Kind: BadgeDelivery, Tone: ToneDanger})
	}
	return set.badges
}

// Labels flattens badges to their labels.
func Labels(badges []Badge) []string {
	out := make([]string, len(badges))
	for i, b := range badges {
		out[i] = b.Label
	}
	return out
}

func identityBadge(o domain.PurchaseOrder) Badge {
	if IsProject(o) {
		return Badge{Label: LabelProject, Kind: BadgeIdentity, Tone: ToneInfo}
	}
	return Badge{Label: LabelStock, Kind: BadgeIdentity, Tone: ToneNeutral}
}

// lifecycleBadge is first-match-wins. With nothing ordered and no flag set
// none of the branches fire.
func lifecycleBadge(o domain.PurchaseOrder) (Badge, bool) {
	ordered := o.TotalOrdered()
	received := o.TotalReceived()
	switch {
	case o.IsArchived:
		return Badge{Label: LabelArchived, Kind: BadgeLifecycle, Tone: ToneMuted}, true
	case o.Status.IsCancelled():
		return Badge{Label: LabelCancelled, Kind: BadgeLifecycle, Tone: ToneDanger}, true
	case o.IsForceClosed:
		return Badge{Label: LabelDone, Kind: BadgeLifecycle, Tone: ToneSuccess}, true
	case ordered <= 0:
		return Badge{}, false
	case received == 0:
		return Badge{Label: LabelOpen, Kind: BadgeLifecycle, Tone: ToneNeutral}, true
	case received < ordered:
		return Badge{Label: LabelPartial, Kind: BadgeLifecycle, Tone: ToneWarning}, true
	case received == ordered:
		return Badge{Label: LabelDone, Kind: BadgeLifecycle, Tone: ToneSuccess}, true
	default:
		return Badge{Label: LabelOverage, Kind: BadgeLifecycle, Tone: ToneWarning}, true
	}
}

// isProcessed reports whether the stored status says goods were booked.
func isProcessed(o domain.PurchaseOrder) bool {
	return o.Status == domain.OrderStatusPartial || o.Status == domain.OrderStatusCompleted
}

func allItemsReceived(o domain.PurchaseOrder) bool {
	for _, item := range o.Items {
		if item.QuantityReceived < item.QuantityExpected {
			return false
		}
	}
	return true
}

type badgeSet struct {
	seen   map[string]struct{}
	badges []Badge
}

func newBadgeSet() *badgeSet {
	return &badgeSet{seen: make(map[string]struct{}, 6), badges: make([]Badge, 0, 6)}
}

func (s *badgeSet) add(b Badge) {
	if _, ok := s.seen[b.Label]; ok {
		return
	}
	s.seen[b.Label] = struct{}{}
	s.badges = append(s.badges, b)
}
