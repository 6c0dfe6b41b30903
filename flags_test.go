// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Quarrel Authors

package quarrel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrel-go/quarrel"
	"github.com/quarrel-go/quarrel/internal/testutil"
	"github.com/quarrel-go/quarrel/parsers"
)

func broadcastCommand(h quarrel.Handler) *quarrel.Command {
	return quarrel.MustCommand(h,
		quarrel.Literal("broadcast", "bc"),
		quarrel.Required("message", parsers.String()),
		quarrel.FlagSet(
			quarrel.NewFlag("bold", "b"),
			quarrel.NewFlag("italic", "i"),
			quarrel.NewFlag("loud", "l").WithPermission("chat.loud"),
			quarrel.NewValueFlag("color", parsers.Enum("red", "green", "blue"), "c"),
			quarrel.NewValueFlag("repeat", parsers.IntRange(1, 10), "r").AsRepeatable(),
		),
	)
}

func broadcastDispatcher(t *testing.T) *quarrel.Dispatcher {
	t.Helper()
	d := quarrel.NewDispatcher(quarrel.WithPermissionFunc(testutil.AllowAll()))
	d.MustRegister(broadcastCommand(testutil.Noop))
	return d
}

func flagError(t *testing.T, err error) *quarrel.FlagParseError {
	t.Helper()
	var fe *quarrel.FlagParseError
	require.ErrorAs(t, err, &fe)
	return fe
}

func TestFlags_RoundTrip(t *testing.T) {
	d := broadcastDispatcher(t)

	ctx, err := d.Execute(&testutil.Console{}, "broadcast hello --bold -i --color red")
	require.NoError(t, err)

	flags := ctx.Flags()
	assert.True(t, flags.IsPresent("bold"))
	assert.True(t, flags.IsPresent("italic"), "short alias must resolve to the canonical name")
	assert.False(t, flags.IsPresent("loud"))

	color, ok := quarrel.FlagValue[string](ctx, "color")
	require.True(t, ok)
	assert.Equal(t, "red", color)

	assert.Equal(t, []string{"bold", "italic", "color"}, flags.Names())
}

func TestFlags_NoFlagsIsFine(t *testing.T) {
	d := broadcastDispatcher(t)

	ctx, err := d.Execute(&testutil.Console{}, "broadcast hello")
	require.NoError(t, err)
	assert.Empty(t, ctx.Flags().Names())
}

func TestFlags_Repeatable(t *testing.T) {
	d := broadcastDispatcher(t)

	ctx, err := d.Execute(&testutil.Console{}, "broadcast hi -r 2 -r 5")
	require.NoError(t, err)

	assert.Equal(t, 2, ctx.Flags().Count("repeat"))
	assert.Equal(t, []any{int64(2), int64(5)}, ctx.Flags().All("repeat"))
}

func TestFlags_Duplicate(t *testing.T) {
	d := broadcastDispatcher(t)

	_, err := d.Execute(&testutil.Console{}, "broadcast hi --bold -b")
	fe := flagError(t, err)
	assert.Equal(t, quarrel.FlagDuplicate, fe.Reason)
	assert.Equal(t, "bold", fe.Flag)
}

func TestFlags_CombinedShorts(t *testing.T) {
	d := broadcastDispatcher(t)

	t.Run("presence group", func(t *testing.T) {
		ctx, err := d.Execute(&testutil.Console{}, "broadcast hi -bi")
		require.NoError(t, err)
		assert.True(t, ctx.Flags().IsPresent("bold"))
		assert.True(t, ctx.Flags().IsPresent("italic"))
	})

	t.Run("value flag cannot combine", func(t *testing.T) {
		_, err := d.Execute(&testutil.Console{}, "broadcast hi -bc")
		fe := flagError(t, err)
		assert.Equal(t, quarrel.FlagUnknown, fe.Reason)
		assert.Equal(t, "-c", fe.Token)
	})

	t.Run("nothing resolves", func(t *testing.T) {
		_, err := d.Execute(&testutil.Console{}, "broadcast hi -xyz")
		fe := flagError(t, err)
		assert.Equal(t, quarrel.FlagNoFlagStarted, fe.Reason)
	})
}

func TestFlags_Unknown(t *testing.T) {
	d := broadcastDispatcher(t)

	_, err := d.Execute(&testutil.Console{}, "broadcast hi --shiny")
	fe := flagError(t, err)
	assert.Equal(t, quarrel.FlagUnknown, fe.Reason)
	assert.Equal(t, "--shiny", fe.Token)
}

func TestFlags_MissingValue(t *testing.T) {
	d := broadcastDispatcher(t)

	_, err := d.Execute(&testutil.Console{}, "broadcast hi --color")
	fe := flagError(t, err)
	assert.Equal(t, quarrel.FlagMissingArgument, fe.Reason)
	assert.Equal(t, "color", fe.Flag)
}

func TestFlags_ValueParseFailure(t *testing.T) {
	d := broadcastDispatcher(t)

	_, err := d.Execute(&testutil.Console{}, "broadcast hi --color purple")
	var parse *quarrel.ArgumentParseError
	require.ErrorAs(t, err, &parse)
}

func TestFlags_Permission(t *testing.T) {
	d := quarrel.NewDispatcher(quarrel.WithPermissionFunc(testutil.Permissions()))
	d.MustRegister(broadcastCommand(testutil.Noop))

	_, err := d.Execute(&testutil.Console{}, "broadcast hi --loud")
	fe := flagError(t, err)
	assert.Equal(t, quarrel.FlagNoPermission, fe.Reason)
	assert.Equal(t, "loud", fe.Flag)
}

func TestFlags_LeftoverAfterSection(t *testing.T) {
	d := broadcastDispatcher(t)

	_, err := d.Execute(&testutil.Console{}, "broadcast hi --bold extra")
	var syntax *quarrel.InvalidSyntaxError
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, "extra", syntax.Token)
}

func TestFlags_Suggestions(t *testing.T) {
	d := broadcastDispatcher(t)

	t.Run("fresh dash offers all unused forms", func(t *testing.T) {
		got := suggestionTexts(d.Suggest(&testutil.Console{}, "broadcast hi -"))
		assert.Contains(t, got, "--bold")
		assert.Contains(t, got, "-b")
		assert.Contains(t, got, "--color")
	})

	t.Run("used flags are filtered", func(t *testing.T) {
		got := suggestionTexts(d.Suggest(&testutil.Console{}, "broadcast hi --bold -"))
		assert.NotContains(t, got, "--bold")
		assert.NotContains(t, got, "-b")
		assert.Contains(t, got, "--italic")
	})

	t.Run("repeatable flags stay offered", func(t *testing.T) {
		got := suggestionTexts(d.Suggest(&testutil.Console{}, "broadcast hi -r 2 -"))
		assert.Contains(t, got, "--repeat")
	})

	t.Run("mid value delegates to the flag parser", func(t *testing.T) {
		got := suggestionTexts(d.Suggest(&testutil.Console{}, "broadcast hi --color "))
		assert.ElementsMatch(t, []string{"red", "green", "blue"}, got)

		got = suggestionTexts(d.Suggest(&testutil.Console{}, "broadcast hi --color gr"))
		assert.ElementsMatch(t, []string{"green"}, got)
	})

	t.Run("combined group extends with presence aliases", func(t *testing.T) {
		d := quarrel.NewDispatcher(quarrel.WithPermissionFunc(testutil.AllowAll()))
		d.MustRegister(broadcastCommand(testutil.Noop))
		got := suggestionTexts(d.Suggest(&testutil.Console{}, "broadcast hi -bil"))
		assert.Empty(t, got, "full group has no further presence aliases")

		got = suggestionTexts(d.Suggest(&testutil.Console{}, "broadcast hi -bi"))
		assert.ElementsMatch(t, []string{"-bil"}, got)
	})

	t.Run("permission filters suggestions", func(t *testing.T) {
		d := quarrel.NewDispatcher(quarrel.WithPermissionFunc(testutil.Permissions()))
		d.MustRegister(broadcastCommand(testutil.Noop))
		got := suggestionTexts(d.Suggest(&testutil.Console{}, "broadcast hi -"))
		assert.NotContains(t, got, "--loud")
		assert.Contains(t, got, "--bold")
	})
}

func TestFlag_ConstructorRules(t *testing.T) {
	assert.Panics(t, func() { quarrel.NewFlag("bold", "bo") }, "multi-rune alias")

	base := quarrel.NewFlag("bold", "b")
	rep := base.AsRepeatable()
	assert.False(t, base.Repeatable())
	assert.True(t, rep.Repeatable())
}
