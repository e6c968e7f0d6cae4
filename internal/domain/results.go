package domain

// ExtractionResult хранит текст, извлеченный из архива: склеенный plain-текст
// и упорядоченные списки по остальным категориям.
type ExtractionResult struct {
	PlainText  string
	categories map[Category][]string
}

// NewExtractionResult создает результат извлечения. Срезы копируются.
func NewExtractionResult(plainText string, categories map[Category][]string) *ExtractionResult {
	cats := make(map[Category][]string, len(AllCategories))
	for _, c := range AllCategories {
		cats[c] = append([]string{}, categories[c]...)
	}
	return &ExtractionResult{PlainText: plainText, categories: cats}
}

// Items возвращает копию элементов категории в порядке документа.
func (r *ExtractionResult) Items(c Category) []string {
	return append([]string{}, r.categories[c]...)
}

// Count возвращает количество элементов категории.
func (r *ExtractionResult) Count(c Category) int {
	return len(r.categories[c])
}

// Total возвращает суммарное количество элементов во всех не-plain категориях.
func (r *ExtractionResult) Total() int {
	total := 0
	for _, items := range r.categories {
		total += len(items)
	}
	return total
}

// ParticipationIndex - производные от архива индексы участия: кто задает
// вопросы и кто отвечает. Вычисляется один раз и далее не меняется.
type ParticipationIndex struct {
	idToAuthor      map[int]string
	questions       map[int]string
	questionCounts  *Tally
	replies         *Tally
	repliesToQuests *Tally
}

// NewParticipationIndex собирает индекс из заранее посчитанных частей.
func NewParticipationIndex(idToAuthor, questions map[int]string, questionCounts, replies, repliesToQuestions *Tally) *ParticipationIndex {
	return &ParticipationIndex{
		idToAuthor:      idToAuthor,
		questions:       questions,
		questionCounts:  questionCounts,
		replies:         replies,
		repliesToQuests: repliesToQuestions,
	}
}

// AuthorOf возвращает автора сообщения по его ID.
func (p *ParticipationIndex) AuthorOf(id int) (string, bool) {
	a, ok := p.idToAuthor[id]
	return a, ok
}

// IsQuestion сообщает, было ли сообщение с данным ID вопросом.
func (p *ParticipationIndex) IsQuestion(id int) bool {
	_, ok := p.questions[id]
	return ok
}

// Questions возвращает копию отображения ID вопроса -> автор.
func (p *ParticipationIndex) Questions() map[int]string {
	out := make(map[int]string, len(p.questions))
	for k, v := range p.questions {
		out[k] = v
	}
	return out
}

// QuestionCounts возвращает число вопросов по авторам.
func (p *ParticipationIndex) QuestionCounts() map[string]int { return p.questionCounts.Map() }

// ReplyCounts возвращает число ответов по авторам.
func (p *ParticipationIndex) ReplyCounts() map[string]int { return p.replies.Map() }

// ReplyToQuestionCounts возвращает число ответов на вопросы по авторам.
func (p *ParticipationIndex) ReplyToQuestionCounts() map[string]int {
	return p.repliesToQuests.Map()
}

// TopQuestioners возвращает n самых активных авторов вопросов.
func (p *ParticipationIndex) TopQuestioners(n int) []RankedEntry { return p.questionCounts.Top(n) }

// TopRepliers возвращает n самых активных отвечающих.
func (p *ParticipationIndex) TopRepliers(n int) []RankedEntry { return p.replies.Top(n) }

// TopRepliersToQuestions возвращает n самых активных отвечающих на вопросы.
func (p *ParticipationIndex) TopRepliersToQuestions(n int) []RankedEntry {
	return p.repliesToQuests.Top(n)
}

// Report - итоговый отчет по архиву, пригодный для JSON.
type Report struct {
	ArchiveName            string                `json:"archive_name"`
	MessageCount           int                   `json:"message_count"`
	Skipped                SkipStats             `json:"skipped"`
	Extraction             map[Category][]string `json:"extraction"`
	Counts                 map[Category]int      `json:"counts"`
	CleanText              string                `json:"clean_text"`
	TopWords               []RankedEntry         `json:"top_words"`
	TopQuestioners         []RankedEntry         `json:"top_questioners"`
	TopRepliers            []RankedEntry         `json:"top_repliers"`
	TopRepliersToQuestions []RankedEntry         `json:"top_repliers_to_questions"`
}
