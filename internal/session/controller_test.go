package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lexreader/internal/domain"
	"lexreader/internal/testutil"
	"lexreader/internal/tokenizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestController() (*Controller, *testutil.MockGateway) {
	gw := new(testutil.MockGateway)
	return NewController(gw, testutil.NewTestLogger()), gw
}

func visibleTexts(c *Controller) []string {
	var out []string
	for _, w := range c.Visible() {
		out = append(out, w.Text)
	}
	return out
}

func TestController_ReadingScenario(t *testing.T) {
	ctx := context.Background()
	c, gw := newTestController()

	gw.On("GetBook", mock.Anything, "1").
		Return(testutil.NewTestBook("1", "Pets", "the cat sat\nthe dog ran"), nil)
	gw.On("Translate", mock.Anything, "cat").
		Return(testutil.Translated("cat", "猫", ""), nil)
	gw.On("SetWordStatus", mock.Anything, domain.Word{Text: "cat", Translation: "猫", Status: domain.StatusFamiliar}).
		Return(errors.New("connection refused"))
	gw.On("ListWords", mock.Anything).
		Return([]domain.Word{{Text: "cat", Translation: "猫", Status: domain.StatusUnfamiliar}}, nil)

	book, err := c.OpenBook(ctx, "1")
	require.NoError(t, err)

	var clickable []string
	for paragraph := range tokenizer.Paragraphs(book.Content) {
		for tok := range tokenizer.Words(paragraph) {
			clickable = append(clickable, tok.Text)
			assert.Equal(t, domain.ColorBlack, c.RenderColor(tok.Text))
		}
	}
	assert.Equal(t, []string{"the", "cat", "sat", "the", "dog", "ran"}, clickable)

	entry, err := c.OnWordClick(ctx, "cat")
	require.NoError(t, err)
	assert.Equal(t, domain.Word{Text: "cat", Translation: "猫", Status: domain.StatusUnfamiliar}, entry)
	assert.Equal(t, domain.ColorRed, c.RenderColor("cat"))
	assert.Equal(t, []string{"cat"}, visibleTexts(c))

	err = c.SetStatus(ctx, "cat", domain.StatusFamiliar)
	assert.Error(t, err)
	assert.Empty(t, visibleTexts(c))
	assert.Equal(t, domain.ColorGreen, c.RenderColor("cat"))
	gw.AssertNotCalled(t, "ListWords", mock.Anything)

	// the server never stored the change, a later listing must not bring the word back
	c.RefreshWords(ctx)
	assert.NotContains(t, visibleTexts(c), "cat")
	assert.Equal(t, domain.ColorGreen, c.RenderColor("cat"))
	assert.Error(t, c.LastError())
}

func TestController_RenderColorWithoutEntry(t *testing.T) {
	c, _ := newTestController()

	for _, word := range []string{"the", "cat", "", "猫"} {
		assert.Equal(t, domain.ColorBlack, c.RenderColor(word))
		_, ok := c.Lookup(word)
		assert.False(t, ok)
	}
}

func TestController_OnWordClickTwice(t *testing.T) {
	ctx := context.Background()
	c, gw := newTestController()

	gw.On("Translate", mock.Anything, "cat").
		Return(testutil.Translated("cat", "猫", domain.StatusLearning), nil).Once()
	gw.On("Translate", mock.Anything, "cat").
		Return(testutil.Translated("cat", "猫咪", domain.StatusUnfamiliar), nil).Once()

	first, err := c.OnWordClick(ctx, "cat")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusLearning, first.Status)

	second, err := c.OnWordClick(ctx, " cat ")
	require.NoError(t, err)
	assert.Equal(t, domain.Word{Text: "cat", Translation: "猫咪", Status: domain.StatusLearning}, second)

	visible := c.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, second, visible[0])
	assert.Equal(t, domain.ColorOrange, c.RenderColor("cat"))
	gw.AssertExpectations(t)
}

func TestController_OnWordClickKeepsPunctuation(t *testing.T) {
	c, gw := newTestController()
	gw.On("Translate", mock.Anything, "cat,").Return(testutil.Translated("cat,", "猫", ""), nil)

	_, err := c.OnWordClick(context.Background(), "cat,")
	require.NoError(t, err)

	assert.Equal(t, domain.ColorRed, c.RenderColor("cat,"))
	assert.Equal(t, domain.ColorBlack, c.RenderColor("cat"))
}

func TestController_OnWordClickInvalid(t *testing.T) {
	c, gw := newTestController()

	_, err := c.OnWordClick(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrInvalidWord)
	gw.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything)
}

func TestController_OnWordClickTransportFailure(t *testing.T) {
	c, gw := newTestController()
	gw.On("Translate", mock.Anything, "cat").Return(domain.Translation{}, errors.New("timeout"))

	_, err := c.OnWordClick(context.Background(), "cat")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrConfigMissing)
	assert.False(t, c.ConfigMissing())
	_, ok := c.Lookup("cat")
	assert.False(t, ok)
}

func TestController_ConfigMissing(t *testing.T) {
	ctx := context.Background()
	c, gw := newTestController()

	gw.On("Translate", mock.Anything, "cat").
		Return(testutil.Translated("cat", "猫", ""), nil).Once()
	gw.On("Translate", mock.Anything, "cat").
		Return(testutil.ConfigMissing("cat"), nil).Once()
	gw.On("Translate", mock.Anything, "dog").
		Return(testutil.ConfigMissing("dog"), nil).Once()
	gw.On("Translate", mock.Anything, "dog").
		Return(testutil.Translated("dog", "狗", ""), nil).Once()

	_, err := c.OnWordClick(ctx, "cat")
	require.NoError(t, err)

	_, err = c.OnWordClick(ctx, "cat")
	assert.ErrorIs(t, err, ErrConfigMissing)
	assert.True(t, c.ConfigMissing())

	cat, _ := c.Lookup("cat")
	assert.Equal(t, "猫", cat.Translation)

	_, err = c.OnWordClick(ctx, "dog")
	assert.ErrorIs(t, err, ErrConfigMissing)
	_, ok := c.Lookup("dog")
	assert.False(t, ok)
	assert.True(t, c.ConfigMissing())

	dog, err := c.OnWordClick(ctx, "dog")
	require.NoError(t, err)
	assert.Equal(t, "狗", dog.Translation)
	assert.False(t, c.ConfigMissing())

	for _, w := range c.Visible() {
		assert.NotEqual(t, domain.ConfigMissingSentinel, w.Translation)
	}
}

func TestController_SetStatusRefetchesForNonFamiliar(t *testing.T) {
	ctx := context.Background()
	c, gw := newTestController()

	gw.On("Translate", mock.Anything, "dog").Return(testutil.Translated("dog", "狗", ""), nil)
	gw.On("SetWordStatus", mock.Anything, domain.Word{Text: "dog", Translation: "狗", Status: domain.StatusLearning}).Return(nil)
	gw.On("ListWords", mock.Anything).Return([]domain.Word{
		{Text: "sat", Translation: "坐", Status: domain.StatusUnfamiliar},
		{Text: "dog", Translation: "狗", Status: domain.StatusLearning},
		{Text: "cat", Translation: "猫", Status: domain.StatusFamiliar},
	}, nil)

	_, err := c.OnWordClick(ctx, "dog")
	require.NoError(t, err)

	err = c.SetStatus(ctx, "dog", domain.StatusLearning)
	require.NoError(t, err)

	gw.AssertNumberOfCalls(t, "ListWords", 1)
	assert.Equal(t, []string{"sat", "dog"}, visibleTexts(c))
	assert.Equal(t, domain.ColorOrange, c.RenderColor("dog"))
	assert.Equal(t, domain.ColorGreen, c.RenderColor("cat"))
	assert.Equal(t, domain.ColorRed, c.RenderColor("sat"))
}

func TestController_SetStatusFollowsServerAfterRefetch(t *testing.T) {
	ctx := context.Background()
	c, gw := newTestController()

	gw.On("SetWordStatus", mock.Anything, mock.Anything).Return(nil)
	gw.On("ListWords", mock.Anything).Return([]domain.Word{
		{Text: "dog", Translation: "狗", Status: domain.StatusUnfamiliar},
	}, nil)

	err := c.SetStatus(ctx, "dog", domain.StatusLearning)
	require.NoError(t, err)

	dog, ok := c.Lookup("dog")
	require.True(t, ok)
	assert.Equal(t, domain.StatusUnfamiliar, dog.Status)
	assert.Equal(t, "狗", dog.Translation)
}

func TestController_SetStatusFamiliarRemovesImmediately(t *testing.T) {
	ctx := context.Background()
	c, gw := newTestController()

	gw.On("ListWords", mock.Anything).Return([]domain.Word{
		{Text: "cat", Translation: "猫", Status: domain.StatusUnfamiliar},
		{Text: "dog", Translation: "狗", Status: domain.StatusLearning},
	}, nil).Once()
	c.RefreshWords(ctx)
	require.Equal(t, []string{"cat", "dog"}, visibleTexts(c))

	started := make(chan struct{})
	release := make(chan struct{})
	gw.On("SetWordStatus", mock.Anything, domain.Word{Text: "cat", Translation: "猫", Status: domain.StatusFamiliar}).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil)

	done := make(chan error, 1)
	go func() { done <- c.SetStatus(ctx, "cat", domain.StatusFamiliar) }()

	<-started
	assert.Equal(t, []string{"dog"}, visibleTexts(c))
	close(release)

	require.NoError(t, <-done)
	assert.Equal(t, []string{"dog"}, visibleTexts(c))
	gw.AssertNumberOfCalls(t, "ListWords", 1)
}

func TestController_FamiliarSurvivesReload(t *testing.T) {
	ctx := context.Background()
	c, gw := newTestController()

	gw.On("ListWords", mock.Anything).Return([]domain.Word{
		{Text: "cat", Translation: "猫", Status: domain.StatusFamiliar},
	}, nil)
	gw.On("Translate", mock.Anything, "cat").Return(testutil.Translated("cat", "猫", domain.StatusFamiliar), nil)

	c.RefreshWords(ctx)
	assert.Empty(t, visibleTexts(c))
	assert.Equal(t, domain.ColorGreen, c.RenderColor("cat"))

	entry, err := c.OnWordClick(ctx, "cat")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFamiliar, entry.Status)
	assert.Empty(t, visibleTexts(c))
}

func TestController_StaleTranslateAfterStatusChange(t *testing.T) {
	ctx := context.Background()
	c, gw := newTestController()

	started := make(chan struct{})
	release := make(chan struct{})
	gw.On("Translate", mock.Anything, "cat").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(testutil.Translated("cat", "猫", domain.StatusUnfamiliar), nil)
	gw.On("SetWordStatus", mock.Anything, domain.Word{Text: "cat", Status: domain.StatusFamiliar}).Return(nil)

	done := make(chan error, 1)
	go func() {
		_, err := c.OnWordClick(ctx, "cat")
		done <- err
	}()

	<-started
	require.NoError(t, c.SetStatus(ctx, "cat", domain.StatusFamiliar))
	close(release)

	assert.ErrorIs(t, <-done, ErrSuperseded)

	cat, ok := c.Lookup("cat")
	require.True(t, ok)
	assert.Equal(t, domain.StatusFamiliar, cat.Status)
	assert.Empty(t, visibleTexts(c))
}

func TestController_OlderClickDoesNotOverwriteNewer(t *testing.T) {
	ctx := context.Background()
	c, gw := newTestController()

	started := make(chan struct{})
	release := make(chan struct{})
	gw.On("Translate", mock.Anything, "cat").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(testutil.Translated("cat", "old", ""), nil).Once()
	gw.On("Translate", mock.Anything, "cat").
		Return(testutil.Translated("cat", "new", ""), nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := c.OnWordClick(ctx, "cat")
		done <- err
	}()
	<-started

	latest, err := c.OnWordClick(ctx, "cat")
	require.NoError(t, err)
	assert.Equal(t, "new", latest.Translation)

	close(release)
	assert.ErrorIs(t, <-done, ErrSuperseded)

	cat, _ := c.Lookup("cat")
	assert.Equal(t, "new", cat.Translation)
	assert.Len(t, c.Visible(), 1)
}

func TestController_RefreshKeepsNewerLocalWords(t *testing.T) {
	ctx := context.Background()
	c, gw := newTestController()

	started := make(chan struct{})
	release := make(chan struct{})
	gw.On("ListWords", mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return([]domain.Word{{Text: "cat", Translation: "猫", Status: domain.StatusUnfamiliar}}, nil)
	gw.On("Translate", mock.Anything, "dog").Return(testutil.Translated("dog", "狗", ""), nil)

	done := make(chan struct{})
	go func() {
		c.RefreshWords(ctx)
		close(done)
	}()
	<-started

	_, err := c.OnWordClick(ctx, "dog")
	require.NoError(t, err)

	close(release)
	<-done

	assert.Equal(t, []string{"cat", "dog"}, visibleTexts(c))
}

func TestController_RefreshWordsFailureDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	c, gw := newTestController()

	gw.On("ListWords", mock.Anything).Return([]domain.Word{
		{Text: "cat", Translation: "猫", Status: domain.StatusLearning},
	}, nil).Once()
	gw.On("ListWords", mock.Anything).Return(nil, errors.New("503")).Once()

	c.RefreshWords(ctx)
	require.Len(t, c.Visible(), 1)

	c.RefreshWords(ctx)
	assert.Empty(t, c.Visible())
	assert.Error(t, c.LastError())
	assert.Equal(t, domain.ColorOrange, c.RenderColor("cat"))
}

func TestController_SetStatusValidation(t *testing.T) {
	c, gw := newTestController()

	assert.ErrorIs(t, c.SetStatus(context.Background(), " ", domain.StatusLearning), domain.ErrInvalidWord)
	assert.ErrorIs(t, c.SetStatus(context.Background(), "cat", domain.Status("mastered")), domain.ErrInvalidStatus)
	gw.AssertNotCalled(t, "SetWordStatus", mock.Anything, mock.Anything)
}

func TestController_StatusCanMoveBackFromFamiliar(t *testing.T) {
	ctx := context.Background()
	c, gw := newTestController()

	gw.On("SetWordStatus", mock.Anything, mock.Anything).Return(nil)
	gw.On("ListWords", mock.Anything).Return([]domain.Word{
		{Text: "cat", Translation: "猫", Status: domain.StatusLearning},
	}, nil)

	require.NoError(t, c.SetStatus(ctx, "cat", domain.StatusFamiliar))
	assert.Empty(t, visibleTexts(c))

	require.NoError(t, c.SetStatus(ctx, "cat", domain.StatusLearning))
	assert.Equal(t, []string{"cat"}, visibleTexts(c))
	assert.Equal(t, domain.ColorOrange, c.RenderColor("cat"))
}

func TestController_RefreshBooks(t *testing.T) {
	ctx := context.Background()
	c, gw := newTestController()

	books := []domain.Book{{ID: "1", Title: "Pets"}}
	gw.On("ListBooks", mock.Anything).Return(books, nil).Once()
	gw.On("ListBooks", mock.Anything).Return(nil, errors.New("down")).Once()

	assert.Equal(t, books, c.RefreshBooks(ctx))
	assert.Equal(t, books, c.Books())

	assert.Empty(t, c.RefreshBooks(ctx))
	assert.Empty(t, c.Books())
	assert.Error(t, c.LastError())
}

func TestController_OpenBook(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		c, gw := newTestController()
		gw.On("GetBook", mock.Anything, "9").Return(nil, domain.ErrBookNotFound)

		content, err := c.OpenBook(ctx, "9")

		assert.ErrorIs(t, err, domain.ErrBookNotFound)
		assert.Nil(t, content)
		assert.Nil(t, c.CurrentBook())
	})

	t.Run("transport failure opens empty book", func(t *testing.T) {
		c, gw := newTestController()
		gw.On("GetBook", mock.Anything, "2").Return(nil, errors.New("reset by peer"))

		content, err := c.OpenBook(ctx, "2")

		require.NoError(t, err)
		assert.Equal(t, "2", content.Book.ID)
		assert.Empty(t, content.Content)
		assert.Error(t, c.LastError())
	})

	t.Run("success", func(t *testing.T) {
		c, gw := newTestController()
		gw.On("GetBook", mock.Anything, "1").Return(testutil.NewTestBook("1", "Pets", "the cat sat"), nil)

		_, err := c.OpenBook(ctx, "1")

		require.NoError(t, err)
		assert.Equal(t, "Pets", c.CurrentBook().Book.Title)
	})
}

func TestController_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("success refreshes books", func(t *testing.T) {
		c, gw := newTestController()
		book := &domain.Book{ID: "1", Title: "pets"}
		gw.On("UploadBook", mock.Anything, "pets.txt", mock.Anything).Return(book, nil)
		gw.On("ListBooks", mock.Anything).Return([]domain.Book{*book}, nil)

		result, err := c.Upload(ctx, "pets.txt", strings.NewReader("the cat sat"))

		require.NoError(t, err)
		assert.Equal(t, book, result)
		assert.Equal(t, []domain.Book{*book}, c.Books())
	})

	t.Run("failure is returned", func(t *testing.T) {
		c, gw := newTestController()
		gw.On("UploadBook", mock.Anything, "pets.txt", mock.Anything).Return(nil, errors.New("413"))

		_, err := c.Upload(ctx, "pets.txt", strings.NewReader("x"))

		assert.Error(t, err)
		gw.AssertNotCalled(t, "ListBooks", mock.Anything)
	})
}

func TestController_StartAndReset(t *testing.T) {
	ctx := context.Background()
	c, gw := newTestController()

	gw.On("ListBooks", mock.Anything).Return([]domain.Book{{ID: "1", Title: "Pets"}}, nil)
	gw.On("ListWords", mock.Anything).Return([]domain.Word{{Text: "cat", Translation: "猫", Status: domain.StatusUnfamiliar}}, nil)

	c.Start(ctx)
	assert.Len(t, c.Books(), 1)
	assert.Len(t, c.Visible(), 1)

	c.Reset()
	assert.Empty(t, c.Books())
	assert.Empty(t, c.Visible())
	assert.Equal(t, domain.ColorBlack, c.RenderColor("cat"))
	assert.NoError(t, c.LastError())
}
