package metrics

// IncrementTaskCreated counts a created task
func (m *Metrics) IncrementTaskCreated() {
	m.safeExecute("IncrementTaskCreated", func() {
		m.TaskCreatedTotal.Inc()
	})
}

// RecordStatusTransition counts a status change. trigger is TriggerManual or TriggerAuto.
func (m *Metrics) RecordStatusTransition(from, to, trigger string) {
	m.safeExecute("RecordStatusTransition", func() {
		m.StatusTransitionsTotal.WithLabelValues(from, to, trigger).Inc()
	})
}

// RecordTopicToggle counts a toggle by the status the topic ended in
func (m *Metrics) RecordTopicToggle(result string) {
	m.safeExecute("RecordTopicToggle", func() {
		m.TopicTogglesTotal.WithLabelValues(result).Inc()
	})
}

func (m *Metrics) IncrementCommentCreated() {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentCreatedTotal.Inc()
	})
}

// AddNotificationsSent counts n notifications of one type
func (m *Metrics) AddNotificationsSent(notificationType string, n int) {
	m.safeExecute("AddNotificationsSent", func() {
		m.NotificationsSentTotal.WithLabelValues(notificationType).Add(float64(n))
	})
}

// SetTasksByStatus sets the task gauge for one status
func (m *Metrics) SetTasksByStatus(status string, count int64) {
	m.safeExecute("SetTasksByStatus", func() {
		m.TasksByStatus.WithLabelValues(status).Set(float64(count))
	})
}

// SetUsersTotal sets total users gauge
func (m *Metrics) SetUsersTotal(count int64) {
	m.safeExecute("SetUsersTotal", func() {
		m.UsersTotal.Set(float64(count))
	})
}
