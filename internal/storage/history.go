package storage

import "sort"

// SaveChatHistory stores a conversation record for a user under
// conversationID, overwriting any previous record at that key. A timestamp
// is added only when the caller did not supply one; conversation_id is
// always overwritten to match the storage key. Returns false (and logs)
// on failure.
func (s *Store) SaveChatHistory(userID, conversationID string, conversation map[string]any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(s.chatHistoryFile)
	if _, ok := doc[userID]; !ok {
		doc[userID] = Partition{}
	}

	record := make(map[string]any, len(conversation)+2)
	for k, v := range conversation {
		record[k] = v
	}
	if _, ok := record["timestamp"]; !ok {
		record["timestamp"] = s.timestamp()
	}
	record["conversation_id"] = conversationID

	doc[userID][conversationID] = record

	if err := s.save(s.chatHistoryFile, doc); err != nil {
		s.logger.Error("save chat history failed",
			"user_id", userID, "conversation_id", conversationID, "error", err)
		return false
	}
	return true
}

// GetChatHistory returns all of a user's conversations sorted by timestamp
// descending. Records without a timestamp sort last. Unknown users get an
// empty list.
func (s *Store) GetChatHistory(userID string) []map[string]any {
	doc := s.load(s.chatHistoryFile)

	conversations := make([]map[string]any, 0, len(doc[userID]))
	for _, record := range doc[userID] {
		conversations = append(conversations, record)
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		return recordTimestamp(conversations[i]) > recordTimestamp(conversations[j])
	})
	return conversations
}

// GetConversation returns one conversation record, or an empty map when
// the user or conversation is unknown.
func (s *Store) GetConversation(userID, conversationID string) map[string]any {
	doc := s.load(s.chatHistoryFile)
	record, ok := doc[userID][conversationID]
	if !ok {
		return map[string]any{}
	}
	return record
}

// DeleteChatHistory removes one conversation. Returns false when it did
// not exist; the document is left untouched in that case.
func (s *Store) DeleteChatHistory(userID, conversationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(s.chatHistoryFile)
	partition, ok := doc[userID]
	if !ok {
		return false
	}
	if _, ok := partition[conversationID]; !ok {
		return false
	}

	delete(partition, conversationID)
	if len(partition) == 0 {
		delete(doc, userID)
	}

	if err := s.save(s.chatHistoryFile, doc); err != nil {
		s.logger.Error("delete chat history failed",
			"user_id", userID, "conversation_id", conversationID, "error", err)
		return false
	}
	return true
}

// ClearAllChatHistory drops a user's entire partition. Returns false when
// the user had no history.
func (s *Store) ClearAllChatHistory(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(s.chatHistoryFile)
	if _, ok := doc[userID]; !ok {
		return false
	}

	delete(doc, userID)

	if err := s.save(s.chatHistoryFile, doc); err != nil {
		s.logger.Error("clear chat history failed", "user_id", userID, "error", err)
		return false
	}
	return true
}

func recordTimestamp(record map[string]any) string {
	ts, _ := record["timestamp"].(string)
	return ts
}
