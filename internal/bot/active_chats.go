package bot

import "sync"

// ActiveChats - потокобезопасное множество чатов, архив которых сейчас
// анализируется. Не дает одному чату запустить несколько анализов сразу.
type ActiveChats struct {
	mu    sync.Mutex
	chats map[int64]string // map[chatID]fileName
}

// NewActiveChats создает новый экземпляр ActiveChats.
func NewActiveChats() *ActiveChats {
	return &ActiveChats{
		chats: make(map[int64]string),
	}
}

// TryAcquire отмечает чат как занятый. Возвращает false, если в чате уже
// идет анализ.
func (s *ActiveChats) TryAcquire(chatID int64, fileName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.chats[chatID]; busy {
		return false
	}
	s.chats[chatID] = fileName
	return true
}

// Current возвращает имя файла, который анализируется в чате.
func (s *ActiveChats) Current(chatID int64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.chats[chatID]
	return name, ok
}

// Release снимает отметку с чата.
func (s *ActiveChats) Release(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chats, chatID)
}
