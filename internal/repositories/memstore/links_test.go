package memstore

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/tragikomedia/shortener/internal/db"
	"github.com/tragikomedia/shortener/internal/models"
	"github.com/tragikomedia/shortener/internal/repositories"
)

type LinkRepoSuite struct {
	suite.Suite
	store  *db.MemoryStorage
	links  *LinkRepo
	clicks *ClickRepo
	codes  *CodeRegistry
}

func TestLinkRepoSuite(t *testing.T) {
	suite.Run(t, new(LinkRepoSuite))
}

func (s *LinkRepoSuite) SetupTest() {
	s.store = db.NewMemStorage()
	s.links = NewLinkRepo(s.store)
	s.clicks = NewClickRepo(s.store)
	s.codes = NewCodeRegistry(s.store)
}

func (s *LinkRepoSuite) newLink(code string, owner *string) *models.Link {
	link := &models.Link{
		ID:        uuid.NewString(),
		Code:      code,
		TargetURL: gofakeit.DomainName(),
		OwnerID:   owner,
	}
	s.Require().NoError(s.links.Create(s.T().Context(), link))
	return link
}

func (s *LinkRepoSuite) TestCreateAndGet() {
	link := s.newLink("abcdefg", nil)

	got, err := s.links.GetByCode(s.T().Context(), "abcdefg")
	s.Require().NoError(err)
	s.Equal(link.TargetURL, got.TargetURL)
	s.False(got.CreatedAt.IsZero())

	err = s.links.Create(s.T().Context(), &models.Link{ID: uuid.NewString(), Code: "abcdefg"})
	s.ErrorIs(err, repositories.ErrDuplicateKey)

	_, err = s.links.GetByCode(s.T().Context(), "missing")
	s.ErrorIs(err, repositories.ErrNotFound)
}

func (s *LinkRepoSuite) TestOwnership() {
	owner, stranger := "owner", "stranger"
	s.newLink("aaaaaaa", &owner)
	s.newLink("bbbbbbb", &owner)
	s.newLink("ccccccc", nil)

	_, err := s.links.GetByOwnerAndCode(s.T().Context(), stranger, "aaaaaaa")
	s.ErrorIs(err, repositories.ErrNotFound)

	got, err := s.links.GetByOwnerAndCode(s.T().Context(), owner, "aaaaaaa")
	s.Require().NoError(err)
	s.Equal("aaaaaaa", got.Code)

	links, err := s.links.GetAllByOwner(s.T().Context(), owner)
	s.Require().NoError(err)
	s.Len(links, 2)

	deleted, err := s.links.DeleteByOwnerAndCode(s.T().Context(), stranger, "aaaaaaa")
	s.Require().NoError(err)
	s.False(deleted)

	deleted, err = s.links.DeleteByOwnerAndCode(s.T().Context(), owner, "aaaaaaa")
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = s.links.DeleteByOwnerAndCode(s.T().Context(), owner, "aaaaaaa")
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *LinkRepoSuite) TestUpdateKeepsClicks() {
	link := s.newLink("ddddddd", nil)

	_, err := s.links.AppendClick(s.T().Context(), link.Code, "click-1")
	s.Require().NoError(err)

	maxClicks := 5
	expiresAt := time.Now().Add(time.Hour).UTC()
	link.MaxClicks = &maxClicks
	link.ExpiresAt = &expiresAt
	link.Expired = true
	link.ClickIDs = nil
	s.Require().NoError(s.links.Update(s.T().Context(), link))

	got, err := s.links.GetByCode(s.T().Context(), link.Code)
	s.Require().NoError(err)
	s.Equal([]string{"click-1"}, got.ClickIDs)
	s.True(got.Expired)
	s.Equal(5, *got.MaxClicks)

	s.ErrorIs(s.links.Update(s.T().Context(), &models.Link{Code: "nothere"}), repositories.ErrNotFound)
}

func (s *LinkRepoSuite) TestClicks() {
	ip := gofakeit.IPv4Address()
	for _, id := range []string{"c1", "c2", "c3"} {
		s.Require().NoError(s.clicks.Create(s.T().Context(), &models.Click{ID: id, LinkID: "l", IP: ip, Time: time.Now()}))
	}

	got, err := s.clicks.GetByIDs(s.T().Context(), []string{"c3", "missing", "c1"})
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("c3", got[0].ID)
	s.Equal("c1", got[1].ID)
}

func (s *LinkRepoSuite) TestRegistry() {
	ok, err := s.codes.Reserve(s.T().Context(), "xyzxyz1")
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.codes.Reserve(s.T().Context(), "xyzxyz1")
	s.Require().NoError(err)
	s.False(ok)

	exists, err := s.codes.Exists(s.T().Context(), "xyzxyz1")
	s.Require().NoError(err)
	s.True(exists)

	codes, err := s.codes.Codes(s.T().Context())
	s.Require().NoError(err)
	s.Equal([]string{"xyzxyz1"}, codes)
}

func TestUserRepo_FindOrCreate(t *testing.T) {
	repo := NewUserRepo(db.NewMemStorage())

	first, err := repo.FindOrCreate(t.Context(), "Facebook", "aabb546", "Somebody")
	if err != nil {
		t.Fatal(err)
	}
	second, err := repo.FindOrCreate(t.Context(), "Facebook", "aabb546", "Renamed")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID || second.Name != "Somebody" {
		t.Errorf("FindOrCreate() = %+v, want existing user %+v", second, first)
	}

	other, err := repo.FindOrCreate(t.Context(), "Google", "aabb546", "Somebody")
	if err != nil {
		t.Fatal(err)
	}
	if other.ID == first.ID {
		t.Errorf("FindOrCreate() same external id of another provider must create a new user")
	}

	got, err := repo.GetByID(t.Context(), first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Somebody" {
		t.Errorf("GetByID() name = %s", got.Name)
	}
}
