package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/hustlenetwork/hustle_backend/models"
)

// updateStatement is the q/u pair of a single update command as sent on the
// wire, with the engagement operators broken out for assertions.
type updateStatement struct {
	Q bson.M `bson:"q"`
	U struct {
		Pull     bson.M `bson:"$pull"`
		AddToSet bson.M `bson:"$addToSet"`
		Push     bson.M `bson:"$push"`
		Set      bson.M `bson:"$set"`
	} `bson:"u"`
}

type updateCommand struct {
	Updates []updateStatement `bson:"updates"`
}

func decodeUpdate(t testing.TB, raw bson.Raw) updateStatement {
	t.Helper()
	var cmd updateCommand
	if err := bson.Unmarshal(raw, &cmd); err != nil {
		t.Fatalf("decoding update command: %v", err)
	}
	if len(cmd.Updates) != 1 {
		t.Fatalf("len(updates) = %d, want 1", len(cmd.Updates))
	}
	return cmd.Updates[0]
}

func startedUpdates(mt *mtest.T) []updateStatement {
	var updates []updateStatement
	for _, evt := range mt.GetAllStartedEvents() {
		if evt.CommandName == "update" {
			updates = append(updates, decodeUpdate(mt, evt.Command))
		}
	}
	return updates
}

func reelDoc(id primitive.ObjectID, likes bson.A, comments bson.A) bson.D {
	now := time.Now().UTC()
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "video_url", Value: "/uploads/clip.mp4"},
		{Key: "hashtags", Value: bson.A{}},
		{Key: "likes", Value: likes},
		{Key: "comments", Value: comments},
		{Key: "created_at", Value: now},
		{Key: "updated_at", Value: now},
	}
}

func matchedResponse(n int) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: n},
		bson.E{Key: "nModified", Value: n},
	)
}

func TestToggleLikePairRestoresLikeCount(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("like then unlike", func(mt *mtest.T) {
		repo := &ReelRepository{collection: mt.Coll}
		id := primitive.NewObjectID()
		ns := mt.DB.Name() + "." + mt.Coll.Name()

		// First toggle: user not in the set, the conditional $pull matches
		// nothing and the $addToSet fires
		mt.AddMockResponses(
			matchedResponse(0),
			matchedResponse(1),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, reelDoc(id, bson.A{"u1"}, bson.A{})),
		)

		liked, err := repo.ToggleLike(context.Background(), id, "u1")
		if err != nil {
			mt.Fatalf("first toggle failed: %v", err)
		}
		if len(liked.Likes) != 1 {
			mt.Errorf("after like: %d likes, want 1", len(liked.Likes))
		}

		// Second toggle: user present, the $pull matches and nothing else runs
		mt.AddMockResponses(
			matchedResponse(1),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, reelDoc(id, bson.A{}, bson.A{})),
		)

		unliked, err := repo.ToggleLike(context.Background(), id, "u1")
		if err != nil {
			mt.Fatalf("second toggle failed: %v", err)
		}
		if len(unliked.Likes) != 0 {
			mt.Errorf("toggle pair must restore the like count, got %d likes", len(unliked.Likes))
		}

		updates := startedUpdates(mt)
		if len(updates) != 3 {
			mt.Fatalf("issued %d update commands, want 3 (pull miss, addToSet, pull hit)", len(updates))
		}

		// Unlike attempts are filtered on membership, so the pull is atomic
		for _, i := range []int{0, 2} {
			if updates[i].U.Pull == nil || updates[i].U.Pull["likes"] != "u1" {
				mt.Errorf("update %d: want $pull on likes %q, got %+v", i, "u1", updates[i].U)
			}
			if updates[i].Q["likes"] != "u1" {
				mt.Errorf("update %d: unlike filter must require membership, got %v", i, updates[i].Q)
			}
		}

		// The like path adds via $addToSet keyed on _id alone
		if updates[1].U.AddToSet == nil || updates[1].U.AddToSet["likes"] != "u1" {
			mt.Errorf("update 1: want $addToSet on likes %q, got %+v", "u1", updates[1].U)
		}
		if _, ok := updates[1].Q["likes"]; ok {
			mt.Errorf("update 1: like filter must not constrain membership, got %v", updates[1].Q)
		}

		for i, u := range updates {
			if u.U.Set == nil || u.U.Set["updated_at"] == nil {
				mt.Errorf("update %d: must bump updated_at", i)
			}
		}
	})
}

func TestToggleLikeAnonymousCollapsesToSentinel(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("repeated anonymous likes", func(mt *mtest.T) {
		repo := &ReelRepository{collection: mt.Coll}
		id := primitive.NewObjectID()
		ns := mt.DB.Name() + "." + mt.Coll.Name()

		for i := 0; i < 3; i++ {
			mt.AddMockResponses(
				matchedResponse(1),
				mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, reelDoc(id, bson.A{AnonLikeSentinel}, bson.A{})),
			)

			reel, err := repo.ToggleLike(context.Background(), id, "")
			if err != nil {
				mt.Fatalf("anonymous toggle %d failed: %v", i, err)
			}
			if len(reel.Likes) != 1 {
				mt.Errorf("anonymous path must contribute exactly 1 like, got %d", len(reel.Likes))
			}
		}

		updates := startedUpdates(mt)
		if len(updates) != 3 {
			mt.Fatalf("issued %d update commands, want 3", len(updates))
		}
		for i, u := range updates {
			// $addToSet is what makes every anonymous like collapse into the
			// single sentinel member
			if u.U.AddToSet == nil || u.U.AddToSet["likes"] != AnonLikeSentinel {
				mt.Errorf("update %d: want $addToSet of the anon sentinel, got %+v", i, u.U)
			}
			if u.U.Pull != nil {
				mt.Errorf("update %d: anonymous likes are never removed, got $pull %v", i, u.U.Pull)
			}
		}
	})
}

func TestToggleLikeNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("known user", func(mt *mtest.T) {
		repo := &ReelRepository{collection: mt.Coll}

		// Neither the conditional pull nor the addToSet matches a document
		mt.AddMockResponses(matchedResponse(0), matchedResponse(0))

		_, err := repo.ToggleLike(context.Background(), primitive.NewObjectID(), "u1")
		if !errors.Is(err, ErrNotFound) {
			mt.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	mt.Run("anonymous", func(mt *mtest.T) {
		repo := &ReelRepository{collection: mt.Coll}

		mt.AddMockResponses(matchedResponse(0))

		_, err := repo.ToggleLike(context.Background(), primitive.NewObjectID(), "")
		if !errors.Is(err, ErrNotFound) {
			mt.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestAddCommentAppendsAtomically(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("push then re-read", func(mt *mtest.T) {
		repo := &ReelRepository{collection: mt.Coll}
		id := primitive.NewObjectID()
		ns := mt.DB.Name() + "." + mt.Coll.Name()

		now := time.Now().UTC()
		comment := models.Comment{
			ID:        primitive.NewObjectID(),
			UserID:    "u1",
			Text:      "hi",
			CreatedAt: now,
		}

		existing := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "user_id", Value: "u0"},
			{Key: "text", Value: "first"},
			{Key: "created_at", Value: now.Add(-time.Minute)},
		}
		appended := bson.D{
			{Key: "_id", Value: comment.ID},
			{Key: "user_id", Value: comment.UserID},
			{Key: "text", Value: comment.Text},
			{Key: "created_at", Value: comment.CreatedAt},
		}

		mt.AddMockResponses(
			matchedResponse(1),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				reelDoc(id, bson.A{}, bson.A{existing, appended})),
		)

		reel, err := repo.AddComment(context.Background(), id, comment)
		if err != nil {
			mt.Fatalf("AddComment failed: %v", err)
		}
		if len(reel.Comments) != 2 {
			mt.Fatalf("len(comments) = %d, want 2", len(reel.Comments))
		}
		last := reel.Comments[len(reel.Comments)-1]
		if last.ID != comment.ID || last.Text != "hi" {
			mt.Errorf("new comment must be last in order, got %+v", last)
		}

		events := mt.GetAllStartedEvents()
		if len(events) == 0 || events[0].CommandName != "update" {
			mt.Fatalf("first command must be the $push update, no pre-read")
		}

		updates := startedUpdates(mt)
		if len(updates) != 1 {
			mt.Fatalf("issued %d update commands, want a single $push", len(updates))
		}
		if updates[0].U.Push == nil || updates[0].U.Push["comments"] == nil {
			mt.Errorf("want a $push on comments, got %+v", updates[0].U)
		}
		if updates[0].U.Set == nil || updates[0].U.Set["updated_at"] == nil {
			mt.Errorf("comment append must bump updated_at")
		}
	})
}

func TestAddCommentNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("zero matched count", func(mt *mtest.T) {
		repo := &ReelRepository{collection: mt.Coll}

		mt.AddMockResponses(matchedResponse(0))

		_, err := repo.AddComment(context.Background(), primitive.NewObjectID(), models.Comment{
			ID:   primitive.NewObjectID(),
			Text: "hi",
		})
		if !errors.Is(err, ErrNotFound) {
			mt.Errorf("err = %v, want ErrNotFound", err)
		}

		// A missing reel is detected from the update itself
		if n := len(mt.GetAllStartedEvents()); n != 1 {
			mt.Errorf("issued %d commands, want only the update", n)
		}
	})
}

func TestListWindowQuery(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("descending window", func(mt *mtest.T) {
		repo := &ReelRepository{collection: mt.Coll}
		ns := mt.DB.Name() + "." + mt.Coll.Name()

		newer := primitive.NewObjectID()
		older := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				reelDoc(newer, bson.A{}, bson.A{}),
				reelDoc(older, bson.A{}, bson.A{})),
		)

		reels, err := repo.List(context.Background(), 2, 3)
		if err != nil {
			mt.Fatalf("List failed: %v", err)
		}
		if len(reels) != 2 {
			mt.Fatalf("len(reels) = %d, want 2", len(reels))
		}
		if reels[0].ID != newer || reels[1].ID != older {
			mt.Errorf("store order must be preserved")
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "find" {
			mt.Fatalf("want a find command")
		}

		var cmd struct {
			Sort  bson.D `bson:"sort"`
			Skip  int64  `bson:"skip"`
			Limit int64  `bson:"limit"`
		}
		if err := bson.Unmarshal(evt.Command, &cmd); err != nil {
			mt.Fatalf("decoding find command: %v", err)
		}
		if len(cmd.Sort) != 1 || cmd.Sort[0].Key != "created_at" {
			mt.Fatalf("sort = %v, want created_at descending", cmd.Sort)
		}
		if v, ok := cmd.Sort[0].Value.(int32); !ok || v != -1 {
			mt.Errorf("sort direction = %v, want -1", cmd.Sort[0].Value)
		}
		if cmd.Skip != 3 || cmd.Limit != 2 {
			mt.Errorf("window = skip %d limit %d, want skip 3 limit 2", cmd.Skip, cmd.Limit)
		}
	})
}
