package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smalipatch.dev/pkg/smalipatch/internal/domain"
	m "smalipatch.dev/pkg/smalipatch/internal/model"
)

func TestLocateCmd(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		method string
	}{
		{"class only", []string{"locate", "out", "android.os.Build"}, ""},
		{"with method", []string{"locate", "out", "android.os.Build", "getSerial"}, "getSerial"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, mockWorkflow, _ := newTestRootCmd(t, newLocateCmd())

			mockWorkflow.EXPECT().Locate(mock.Anything, mock.MatchedBy(func(args domain.LocateArgs) bool {
				return args.Root == m.Path("out") &&
					args.Class == "android.os.Build" &&
					args.Method == tt.method
			})).Return(nil)

			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())
		})
	}
}

func TestLocateCmd_ArgCount(t *testing.T) {
	for _, args := range [][]string{{"locate", "out"}, {"locate", "out", "A", "b", "c"}} {
		cmd, _, _ := newTestRootCmd(t, newLocateCmd())

		cmd.SetArgs(args)
		require.Error(t, cmd.Execute())
	}
}
