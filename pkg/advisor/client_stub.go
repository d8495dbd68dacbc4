package advisor

import "context"

type StubClient struct {
	ReviewText string
	ReviewErr  error
	Records    []StatementRecord
	ParseErr   error

	LastReviewRequest *ReviewRequest
	LastDocument      *Document
}

func NewStubClient() *StubClient {
	return &StubClient{}
}

func (s *StubClient) Review(ctx context.Context, request ReviewRequest) (string, error) {
	s.LastReviewRequest = &request
	if s.ReviewErr != nil {
		return "", s.ReviewErr
	}
	return s.ReviewText, nil
}

func (s *StubClient) ParseStatement(ctx context.Context, document Document) ([]StatementRecord, error) {
	s.LastDocument = &document
	if s.ParseErr != nil {
		return nil, s.ParseErr
	}
	return s.Records, nil
}

func (s *StubClient) Reset() {
	s.ReviewText = ""
	s.ReviewErr = nil
	s.Records = nil
	s.ParseErr = nil
	s.LastReviewRequest = nil
	s.LastDocument = nil
}
