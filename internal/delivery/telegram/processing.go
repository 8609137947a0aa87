package telegram

// startProcessing foydalanuvchi uchun bajarilayotgan komandani belgilaydi.
// Oldingi komanda tugamagan bo'lsa uning nomi va false qaytadi.
func (h *BotHandler) startProcessing(userID int64, command string) (string, bool) {
	h.processingMu.Lock()
	defer h.processingMu.Unlock()
	if h.processing == nil {
		h.processing = make(map[int64]string)
	}
	if running, busy := h.processing[userID]; busy {
		return running, false
	}
	h.processing[userID] = command
	return command, true
}

func (h *BotHandler) endProcessing(userID int64) {
	h.processingMu.Lock()
	delete(h.processing, userID)
	h.processingMu.Unlock()
}

func (h *BotHandler) isProcessing(userID int64) bool {
	h.processingMu.RLock()
	_, busy := h.processing[userID]
	h.processingMu.RUnlock()
	return busy
}
