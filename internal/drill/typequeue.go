package drill

// typeQueue is the FIFO of question types still to be asked for the
// current word. It never holds more than NumTypes entries.
type typeQueue struct {
	buf  [NumTypes]QuestionType
	head int
	n    int
}

func (q *typeQueue) reset(types []QuestionType) {
	q.head, q.n = 0, 0
	for _, t := range types {
		q.push(t)
	}
}

func (q *typeQueue) push(t QuestionType) {
	if q.n == NumTypes {
		return
	}
	q.buf[(q.head+q.n)%NumTypes] = t
	q.n++
}

func (q *typeQueue) peek() (QuestionType, bool) {
	if q.n == 0 {
		return 0, false
	}
	return q.buf[q.head], true
}

func (q *typeQueue) pop() (QuestionType, bool) {
	t, ok := q.peek()
	if !ok {
		return 0, false
	}
	q.head = (q.head + 1) % NumTypes
	q.n--
	return t, true
}

func (q *typeQueue) len() int { return q.n }

func (q *typeQueue) items() []QuestionType {
	out := make([]QuestionType, q.n)
	for i := range q.n {
		out[i] = q.buf[(q.head+i)%NumTypes]
	}
	return out
}
