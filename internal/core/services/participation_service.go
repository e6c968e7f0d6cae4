package services

import (
	"strings"

	"telegram-chat-stats/internal/domain"
	"telegram-chat-stats/internal/ports"
)

// ParticipationServiceImpl строит индексы вопросов и ответов по архиву.
type ParticipationServiceImpl struct{}

// NewParticipationService создает новый экземпляр ParticipationServiceImpl.
func NewParticipationService() ports.ParticipationService {
	return &ParticipationServiceImpl{}
}

// BuildIndex считает, кто задает вопросы и кто на них отвечает.
// Сообщения без автора в индексы не попадают.
func (s *ParticipationServiceImpl) BuildIndex(archive *domain.Archive) *domain.ParticipationIndex {
	idToAuthor := make(map[int]string, len(archive.Messages))
	questions := make(map[int]string)
	var questionOrder []int

	for _, msg := range archive.Messages {
		author, ok := msg.Author()
		if !ok {
			continue
		}
		idToAuthor[msg.ID] = author
		if IsQuestion(msg) {
			if _, seen := questions[msg.ID]; !seen {
				questionOrder = append(questionOrder, msg.ID)
			}
			questions[msg.ID] = author
		}
	}

	questionCounts := domain.NewTally()
	for _, id := range questionOrder {
		questionCounts.Add(questions[id])
	}

	replies := domain.NewTally()
	repliesToQuestions := domain.NewTally()
	for _, msg := range archive.Messages {
		if !msg.IsReply() {
			continue
		}
		author, ok := msg.Author()
		if !ok {
			continue
		}
		replies.Add(author)
		if _, ok := questions[*msg.ReplyToMessageID]; ok {
			repliesToQuestions.Add(author)
		}
	}

	return domain.NewParticipationIndex(idToAuthor, questions, questionCounts, replies, repliesToQuestions)
}

// IsQuestion сообщает, содержит ли хотя бы один plain-фрагмент сообщения
// вопросительный знак (латинский или арабский).
func IsQuestion(msg domain.Message) bool {
	for _, text := range msg.PlainFragments() {
		if strings.ContainsAny(sanitize(text), "?؟") {
			return true
		}
	}
	return false
}
