package util

import (
	"context"
	"errors"
	"testing"
)

func TestRetryErr(t *testing.T) {
	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		err := RetryErr(3, func() error {
			calls++
			return nil
		})
		if err != nil {
			t.Errorf("RetryErr() error = %v, want nil", err)
		}
		if calls != 1 {
			t.Errorf("fn called %d times, want 1", calls)
		}
	})

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := RetryErr(3, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		if err != nil {
			t.Errorf("RetryErr() error = %v, want nil", err)
		}
		if calls != 3 {
			t.Errorf("fn called %d times, want 3", calls)
		}
	})

	t.Run("returns last error after exhausting tries", func(t *testing.T) {
		wantErr := errors.New("permanent")
		err := RetryErr(2, func() error {
			return wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Errorf("RetryErr() error = %v, want %v", err, wantErr)
		}
	})

	t.Run("non-positive tries defaults to one", func(t *testing.T) {
		calls := 0
		_ = RetryErr(0, func() error {
			calls++
			return errors.New("fail")
		})
		if calls != 1 {
			t.Errorf("fn called %d times, want 1", calls)
		}
	})
}

func TestRetryWithContext(t *testing.T) {
	t.Run("returns result", func(t *testing.T) {
		got, err := RetryWithContext(context.Background(), 3, func(ctx context.Context) (int, error) {
			return 42, nil
		})
		if err != nil {
			t.Fatalf("RetryWithContext() error = %v", err)
		}
		if got != 42 {
			t.Errorf("RetryWithContext() = %d, want 42", got)
		}
	})

	t.Run("stops on canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		calls := 0
		_, err := RetryWithContext(ctx, 3, func(ctx context.Context) (int, error) {
			calls++
			return 0, errors.New("fail")
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("RetryWithContext() error = %v, want context.Canceled", err)
		}
		if calls != 0 {
			t.Errorf("fn called %d times, want 0", calls)
		}
	})

	t.Run("does not retry context errors from fn", func(t *testing.T) {
		calls := 0
		_, err := RetryWithContext(context.Background(), 5, func(ctx context.Context) (int, error) {
			calls++
			return 0, context.DeadlineExceeded
		})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("RetryWithContext() error = %v, want context.DeadlineExceeded", err)
		}
		if calls != 1 {
			t.Errorf("fn called %d times, want 1", calls)
		}
	})
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "empty", text: "", want: ""},
		{name: "already clean", text: "one two", want: "one two"},
		{name: "newlines and tabs", text: "one\n\ttwo   three\r\nfour", want: "one two three four"},
		{name: "leading and trailing", text: "  padded  ", want: "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollapseWhitespace(tt.text)
			if got != tt.want {
				t.Errorf("CollapseWhitespace() = %q, want %q", got, tt.want)
			}
		})
	}
}
