package store

import (
	"sync"
	"testing"
)

func TestCreateAndReadUser(t *testing.T) {
	s := New()
	s.CreateUser(&User{Username: "alice", Y1: []byte{1}, Y2: []byte{2}})

	u := s.ReadUser("alice")
	if u == nil {
		t.Fatal("expected user to exist")
	}
	if u.R1 != nil || u.R2 != nil {
		t.Fatal("freshly registered user should have no pending challenge")
	}
}

func TestReadUserMissing(t *testing.T) {
	s := New()
	if s.ReadUser("nobody") != nil {
		t.Fatal("expected nil for unregistered user")
	}
}

func TestReRegisterOverwrites(t *testing.T) {
	s := New()
	s.CreateUser(&User{Username: "alice", Y1: []byte{1}, Y2: []byte{2}})
	s.CreateUser(&User{Username: "alice", Y1: []byte{9}, Y2: []byte{9}})

	u := s.ReadUser("alice")
	if u.Y1[0] != 9 {
		t.Fatal("expected re-registration to overwrite y1")
	}
}

func TestUpdateUser(t *testing.T) {
	s := New()
	s.CreateUser(&User{Username: "alice", Y1: []byte{1}, Y2: []byte{2}})

	ok := s.UpdateUser(&User{Username: "alice", Y1: []byte{9}, Y2: []byte{9}, R1: []byte{7}, R2: []byte{8}})
	if !ok {
		t.Fatal("expected UpdateUser to succeed for an existing user")
	}

	u := s.ReadUser("alice")
	if u.Y1[0] != 9 || u.R1[0] != 7 {
		t.Fatal("expected UpdateUser to overwrite the stored record in full")
	}
}

func TestUpdateUserMissing(t *testing.T) {
	s := New()
	if s.UpdateUser(&User{Username: "ghost"}) {
		t.Fatal("expected UpdateUser to fail for a user that was never created")
	}
}

func TestCreateChallengeRequiresExistingUser(t *testing.T) {
	s := New()
	if _, ok := s.CreateChallenge("ghost", []byte{1}, []byte{2}, []byte{3}); ok {
		t.Fatal("expected challenge creation against a missing user to fail")
	}
}

func TestCreateChallengePopulatesR1R2(t *testing.T) {
	s := New()
	s.CreateUser(&User{Username: "alice", Y1: []byte{1}, Y2: []byte{2}})

	id, ok := s.CreateChallenge("alice", []byte{5}, []byte{6}, []byte{7})
	if !ok {
		t.Fatal("expected challenge creation to succeed")
	}
	if len(id) != 36 {
		t.Fatalf("expected a 36-character auth id, got %q", id)
	}

	u := s.ReadUser("alice")
	if string(u.R1) != string([]byte{5}) || string(u.R2) != string([]byte{6}) {
		t.Fatal("expected r1/r2 to be stored on the user record")
	}

	ch := s.GetChallenge(id)
	if ch == nil || ch.User != "alice" {
		t.Fatal("expected challenge to reference alice")
	}
}

func TestFetchAndConsumeChallengeDeletesIt(t *testing.T) {
	s := New()
	s.CreateUser(&User{Username: "alice", Y1: []byte{1}, Y2: []byte{2}})
	id, _ := s.CreateChallenge("alice", []byte{5}, []byte{6}, []byte{7})

	ch, u := s.FetchAndConsumeChallenge(id)
	if ch == nil || u == nil {
		t.Fatal("expected both challenge and user to be returned")
	}
	if s.GetChallenge(id) != nil {
		t.Fatal("expected challenge to be deleted after consumption")
	}
}

func TestFetchAndConsumeChallengeOrphanedUser(t *testing.T) {
	s := New()
	s.CreateUser(&User{Username: "bob", Y1: []byte{1}, Y2: []byte{2}})
	id, _ := s.CreateChallenge("bob", []byte{5}, []byte{6}, []byte{7})
	s.DeleteUser("bob")

	ch, u := s.FetchAndConsumeChallenge(id)
	if ch == nil {
		t.Fatal("expected the orphaned challenge itself to still be returned")
	}
	if u != nil {
		t.Fatal("expected a nil user for a challenge whose user was deleted")
	}
}

func TestFetchAndConsumeChallengeMissing(t *testing.T) {
	s := New()
	ch, u := s.FetchAndConsumeChallenge("never-issued")
	if ch != nil || u != nil {
		t.Fatal("expected nil, nil for an unknown auth id")
	}
}

func TestConcurrentFetchAndConsumeIsExclusive(t *testing.T) {
	s := New()
	s.CreateUser(&User{Username: "alice", Y1: []byte{1}, Y2: []byte{2}})
	id, _ := s.CreateChallenge("alice", []byte{5}, []byte{6}, []byte{7})

	var wg sync.WaitGroup
	hits := make([]bool, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ch, _ := s.FetchAndConsumeChallenge(id)
			hits[i] = ch != nil
		}(i)
	}
	wg.Wait()

	count := 0
	for _, hit := range hits {
		if hit {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one concurrent fetch to succeed, got %d", count)
	}
}

func TestDeleteUser(t *testing.T) {
	s := New()
	s.CreateUser(&User{Username: "alice", Y1: []byte{1}, Y2: []byte{2}})

	u := s.DeleteUser("alice")
	if u == nil || u.Username != "alice" {
		t.Fatal("expected deleted user to be returned")
	}
	if s.ReadUser("alice") != nil {
		t.Fatal("expected user to be gone after delete")
	}
}
