package metrics

// IncrementKanbanCreated increments the kanban creation counter
func (m *Metrics) IncrementKanbanCreated() {
	m.safeExecute("IncrementKanbanCreated", func() {
		m.KanbanCreatedTotal.Inc()
	})
}

// IncrementCardCreated increments the card creation counter
func (m *Metrics) IncrementCardCreated() {
	m.safeExecute("IncrementCardCreated", func() {
		m.CardCreatedTotal.Inc()
	})
}

// IncrementCardMoved increments the card move/reorder counter
func (m *Metrics) IncrementCardMoved() {
	m.safeExecute("IncrementCardMoved", func() {
		m.CardMovedTotal.Inc()
	})
}

// IncrementInvitationIssued increments the invitation issuance counter
func (m *Metrics) IncrementInvitationIssued() {
	m.safeExecute("IncrementInvitationIssued", func() {
		m.InvitationIssuedTotal.Inc()
	})
}

// IncrementInvitationAccepted increments the invitation acceptance counter
func (m *Metrics) IncrementInvitationAccepted() {
	m.safeExecute("IncrementInvitationAccepted", func() {
		m.InvitationAcceptedTotal.Inc()
	})
}

// SetKanbansTotal sets the total kanbans gauge
func (m *Metrics) SetKanbansTotal(count int64) {
	m.safeExecute("SetKanbansTotal", func() {
		m.KanbansTotal.Set(float64(count))
	})
}

// SetCardsTotal sets the total cards gauge
func (m *Metrics) SetCardsTotal(count int64) {
	m.safeExecute("SetCardsTotal", func() {
		m.CardsTotal.Set(float64(count))
	})
}
