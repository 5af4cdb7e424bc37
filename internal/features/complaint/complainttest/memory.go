// Package complainttest provides in-memory repositories and recording fakes
// for exercising the complaint engines without MongoDB.
package complainttest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"seedcare/internal/common/apperror"
	"seedcare/internal/common/models"
	"seedcare/internal/features/complaint"
	"seedcare/internal/features/notification"
	"seedcare/internal/features/staff"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ComplaintStore is an in-memory complaint.ComplaintRepository with a unique complaint_number
type ComplaintStore struct {
	mu        sync.Mutex
	byID      map[primitive.ObjectID]bson.Raw
	numbers   map[string]primitive.ObjectID
	UpdateErr error
	Creates   int
}

func NewComplaintStore() *ComplaintStore {
	return &ComplaintStore{
		byID:    make(map[primitive.ObjectID]bson.Raw),
		numbers: make(map[string]primitive.ObjectID),
	}
}

// Seed stores c as-is, bypassing number generation
func (s *ComplaintStore) Seed(c *complaint.Complaint) *complaint.Complaint {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	raw, err := bson.Marshal(c)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[c.ID] = raw
	if c.ComplaintNumber != "" {
		s.numbers[c.ComplaintNumber] = c.ID
	}
	return c
}

func (s *ComplaintStore) Create(ctx context.Context, c *complaint.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Creates++

	if _, taken := s.numbers[c.ComplaintNumber]; taken {
		return complaint.ErrDuplicateNumber
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	raw, err := bson.Marshal(c)
	if err != nil {
		return err
	}
	s.byID[c.ID] = raw
	s.numbers[c.ComplaintNumber] = c.ID
	return nil
}

func (s *ComplaintStore) FindByID(ctx context.Context, id primitive.ObjectID) (*complaint.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.byID[id]
	if !ok {
		return nil, apperror.NotFound("complaint")
	}
	return decode(raw)
}

func (s *ComplaintStore) FindByNumber(ctx context.Context, number string) (*complaint.Complaint, error) {
	s.mu.Lock()
	id, ok := s.numbers[number]
	s.mu.Unlock()
	if !ok {
		return nil, apperror.NotFound("complaint")
	}
	return s.FindByID(ctx, id)
}

func (s *ComplaintStore) LatestNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	latest := ""
	for number := range s.numbers {
		if strings.HasPrefix(number, prefix) && number > latest {
			latest = number
		}
	}
	return latest, nil
}

// Update merges the $set patch into the stored BSON document
func (s *ComplaintStore) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*complaint.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UpdateErr != nil {
		return nil, s.UpdateErr
	}
	raw, ok := s.byID[id]
	if !ok {
		return nil, apperror.NotFound("complaint")
	}

	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	for k, v := range set {
		doc[k] = v
	}
	merged, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	updated, err := decode(merged)
	if err != nil {
		return nil, err
	}
	// Re-encode through the struct so the stored shape matches Create
	if s.byID[id], err = bson.Marshal(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ComplaintStore) List(ctx context.Context, filter complaint.ListFilter, page, limit int64) ([]complaint.Complaint, int64, error) {
	all := s.All()
	matched := []complaint.Complaint{}
	for _, c := range all {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && c.Priority != filter.Priority {
			continue
		}
		if filter.Department != "" && c.Department != filter.Department {
			continue
		}
		if filter.AssignedTo != "" && (c.AssignedTo == nil || *c.AssignedTo != filter.AssignedTo) {
			continue
		}
		if filter.Search != "" {
			q := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(c.ComplaintNumber), q) && !strings.Contains(strings.ToLower(c.CustomerName), q) {
				continue
			}
		}
		matched = append(matched, c)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= total {
		return []complaint.Complaint{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s *ComplaintStore) FindCreatedBetween(ctx context.Context, from, to time.Time) ([]complaint.Complaint, error) {
	out := []complaint.Complaint{}
	for _, c := range s.All() {
		if !c.CreatedAt.Before(from) && !c.CreatedAt.After(to) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// All returns a snapshot of every stored complaint
func (s *ComplaintStore) All() []complaint.Complaint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]complaint.Complaint, 0, len(s.byID))
	for _, raw := range s.byID {
		c, err := decode(raw)
		if err != nil {
			panic(err)
		}
		out = append(out, *c)
	}
	return out
}

// Get is FindByID for tests that know the complaint exists
func (s *ComplaintStore) Get(id primitive.ObjectID) *complaint.Complaint {
	c, err := s.FindByID(context.Background(), id)
	if err != nil {
		panic(err)
	}
	return c
}

func decode(raw bson.Raw) (*complaint.Complaint, error) {
	var c complaint.Complaint
	if err := bson.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// HistoryStore is an in-memory complaint.HistoryRepository
type HistoryStore struct {
	mu      sync.Mutex
	entries []complaint.HistoryEntry
}

func (s *HistoryStore) Append(ctx context.Context, entry *complaint.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = primitive.NewObjectID()
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *HistoryStore) ListByComplaint(ctx context.Context, complaintID primitive.ObjectID) ([]complaint.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []complaint.HistoryEntry{}
	for _, e := range s.entries {
		if e.ComplaintID == complaintID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Actions lists the recorded actions for one complaint in order
func (s *HistoryStore) Actions(complaintID primitive.ObjectID) []complaint.HistoryAction {
	entries, _ := s.ListByComplaint(context.Background(), complaintID)
	actions := make([]complaint.HistoryAction, 0, len(entries))
	for _, e := range entries {
		actions = append(actions, e.Action)
	}
	return actions
}

// ResponseStore is an in-memory complaint.ResponseRepository
type ResponseStore struct {
	mu        sync.Mutex
	responses []complaint.Response
}

func (s *ResponseStore) Create(ctx context.Context, response *complaint.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	response.ID = primitive.NewObjectID()
	s.responses = append(s.responses, *response)
	return nil
}

func (s *ResponseStore) ListByComplaint(ctx context.Context, complaintID primitive.ObjectID, includeInternal bool) ([]complaint.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []complaint.Response{}
	for _, r := range s.responses {
		if r.ComplaintID != complaintID || (r.IsInternal && !includeInternal) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Notifier records every message instead of delivering it
type Notifier struct {
	mu       sync.Mutex
	messages []notification.Message
}

func (n *Notifier) Send(ctx context.Context, msg notification.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func (n *Notifier) Messages() []notification.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.Message(nil), n.messages...)
}

// Templates lists the template of every recorded message in order
func (n *Notifier) Templates() []notification.TemplateType {
	msgs := n.Messages()
	out := make([]notification.TemplateType, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Template)
	}
	return out
}

// AssignmentCloser records CloseActive calls
type AssignmentCloser struct {
	mu     sync.Mutex
	Closed []primitive.ObjectID
}

func (a *AssignmentCloser) CloseActive(ctx context.Context, complaintID primitive.ObjectID, actor models.Actor) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Closed = append(a.Closed, complaintID)
	return nil
}

// StaffStore is an in-memory staff.StaffRepository that maintains the
// assigned counter and running averages the way the Mongo store does.
type StaffStore struct {
	mu        sync.Mutex
	profiles  map[string]*staff.Profile
	order     []string
	ListCalls int
}

func NewStaffStore(profiles ...staff.Profile) *StaffStore {
	s := &StaffStore{profiles: make(map[string]*staff.Profile)}
	for i := range profiles {
		p := profiles[i]
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.profiles[p.UserID] = &p
		s.order = append(s.order, p.UserID)
	}
	return s
}

func (s *StaffStore) Create(ctx context.Context, profile *staff.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.profiles[profile.UserID]; exists {
		return apperror.Validation("staff profile for user %s already exists", profile.UserID)
	}
	profile.ID = primitive.NewObjectID()
	p := *profile
	s.profiles[p.UserID] = &p
	s.order = append(s.order, p.UserID)
	return nil
}

func (s *StaffStore) Update(ctx context.Context, userID string, update staff.ProfileUpdate) (*staff.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, apperror.NotFound("staff profile")
	}
	if update.FullName != nil {
		p.FullName = *update.FullName
	}
	if update.Email != nil {
		p.Email = *update.Email
	}
	if update.Department != nil {
		p.Department = *update.Department
	}
	if update.ComplaintPermissions != nil {
		p.ComplaintPermissions = update.ComplaintPermissions
	}
	if update.MaxAssignedComplaints != nil {
		p.MaxAssignedComplaints = *update.MaxAssignedComplaints
	}
	if update.IsActive != nil {
		p.IsActive = *update.IsActive
	}
	out := *p
	return &out, nil
}

func (s *StaffStore) FindByUserID(ctx context.Context, userID string) (*staff.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, apperror.NotFound("staff profile")
	}
	out := *p
	return &out, nil
}

func (s *StaffStore) List(ctx context.Context, filter staff.ListFilter) ([]staff.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ListCalls++
	out := []staff.Profile{}
	for _, id := range s.order {
		p := s.profiles[id]
		if filter.Department != "" && p.Department != filter.Department {
			continue
		}
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *StaffStore) AdjustAssignedCount(ctx context.Context, userID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil
	}
	if p.CurrentAssignedCount+delta < 0 {
		return nil
	}
	p.CurrentAssignedCount += delta
	return nil
}

func (s *StaffStore) RecordResolution(ctx context.Context, userID string, resolutionHours float64, rating *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil
	}
	p.AvgResolutionTime = (p.AvgResolutionTime*float64(p.ResolvedCount) + resolutionHours) / float64(p.ResolvedCount+1)
	p.ResolvedCount++
	if rating != nil {
		p.CustomerSatisfactionAvg = (p.CustomerSatisfactionAvg*float64(p.RatedCount) + float64(*rating)) / float64(p.RatedCount+1)
		p.RatedCount++
	}
	return nil
}

// Profile returns a snapshot of one profile
func (s *StaffStore) Profile(userID string) staff.Profile {
	p, err := s.FindByUserID(context.Background(), userID)
	if err != nil {
		panic(err)
	}
	return *p
}
