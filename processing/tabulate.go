package processing

import "lumiere/api/models"

// BuildDataset flattens raw session documents into the derived table, one row
// per session. Reconstruction is recomputed from raw events on every call;
// nothing cached in the documents is trusted. The input is read-only and the
// transform is deterministic, so running it twice yields identical tables.
func BuildDataset(sessions []models.RawSession) []models.Row {
	rows := make([]models.Row, 0, len(sessions))
	for _, session := range sessions {
		rows = append(rows, BuildRow(session))
	}
	return rows
}

// BuildRow flattens a single session document and computes its derived
// variables.
func BuildRow(session models.RawSession) models.Row {
	row := models.Row{
		SessionID:             stringField(session, "session_id"),
		DocID:                 stringField(session, "_doc_id"),
		PID:                   stringField(session, "pid"),
		StartedAt:             NormalizeTimestamp(session["started_at"]),
		CompletedAt:           NormalizeTimestamp(session["completed_at"]),
		ConsentedAt:           NormalizeTimestamp(session["consented_at"]),
		GroupAssignedAt:       NormalizeTimestamp(session["group_assigned_at"]),
		Consented:             boolField(session, "consented"),
		DebugMode:             boolField(session, "debug_mode"),
		DeviceType:            stringField(session, "device_type"),
		ARSupported:           boolFieldPtr(session, "ar_supported"),
		Locale:                stringField(session, "locale"),
		Timezone:              stringField(session, "timezone"),
		Group:                 intField(session, "group"),
		GroupAssignmentStatus: stringField(session, "group_assignment_status"),
		Events:                eventList(session["events"]),
		FinalCart:             anyList(session["final_cart"]),
	}
	if n, ok := models.AsInt(session["final_cart_count"]); ok {
		row.FinalCartCount = n
	}

	if survey, ok := session["survey"].(map[string]any); ok {
		row.SurveySubmittedAt = NormalizeTimestamp(survey["submitted_at"])
		if final, ok := survey["survey_final"].(map[string]any); ok && len(final) > 0 {
			row.HasSurveyFinal = true
			row.Survey = make(map[string]any, len(final))
			for question, answer := range final {
				row.Survey["survey_"+question] = answer
			}
		}
	}

	row.EventMetrics = ExtractEventMetrics(row.Events)

	signals := ExtractGroupSignals(row.Events)
	recon := ReconstructGroup(signals)
	row.GroupReconstructed = recon.Group
	row.GroupFinal, row.ReconstructionMethod, row.ReconstructionConfidence = ResolveGroup(row.Group, recon)

	if row.GroupFinal != nil {
		if variety, ok := VarietyForGroup(*row.GroupFinal); ok {
			row.Variety = &variety
		}
		if ar, ok := ARForGroup(*row.GroupFinal); ok {
			row.AREnabled = &ar
		}
	}

	// Absence of an end event must not read as zero duration.
	row.SessionDurationSec = diffSeconds(row.CompletedAt, row.StartedAt)
	row.TimeToSurveySec = diffSeconds(row.SurveySubmittedAt, row.StartedAt)
	row.IsCompleted = row.HasSurveyFinal
	row.HasSurvey = row.HasSurveyFinal
	return row
}

func diffSeconds(end, start *float64) *float64 {
	if end == nil || start == nil {
		return nil
	}
	d := *end - *start
	return &d
}

func stringField(session models.RawSession, key string) *string {
	if s, ok := models.AsString(session[key]); ok {
		return &s
	}
	return nil
}

func boolField(session models.RawSession, key string) bool {
	b, _ := models.AsBool(session[key])
	return b
}

func boolFieldPtr(session models.RawSession, key string) *bool {
	if b, ok := models.AsBool(session[key]); ok {
		return &b
	}
	return nil
}

func intField(session models.RawSession, key string) *int {
	if session[key] == nil {
		return nil
	}
	if n, ok := models.AsInt(session[key]); ok {
		return &n
	}
	return nil
}

func eventList(v any) []models.Event {
	raw, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]models.Event); ok {
			return typed
		}
		return nil
	}
	events := make([]models.Event, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			events = append(events, models.Event(m))
		}
	}
	return events
}

func anyList(v any) []any {
	list, _ := v.([]any)
	return list
}
