package treedom

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lestrrat-go/treedom/dom"
)

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`<p>a<b>b</b>c</p>`,
		`<div class="note" id="d1"><span>x</span><!--c--></div>`,
		`<ul><li>one</li><li>two</li></ul>`,
		`<script>if (a < b) {}</script>`,
	}
	ctx := context.Background()
	for _, input := range inputs {
		tree, diags, err := ParseHTMLString(ctx, input, WithFullDocument(false))
		require.NoError(t, err, "parse %q", input)
		require.Empty(t, diags, "parse %q", input)

		first := serializeHTML(t, tree)
		require.Equal(t, input, first, "well-formed input reproduces itself")

		// serializing the reparsed output must be a fixed point
		tree2, _, err := ParseHTMLString(ctx, first, WithFullDocument(false))
		require.NoError(t, err)
		require.Equal(t, first, serializeHTML(t, tree2))
		require.True(t, dom.Equal(tree, tree.Root(), tree2, tree2.Root()),
			"reparsed tree is structurally identical")
	}
}

func TestRoundTripXML(t *testing.T) {
	inputs := []string{
		`<root><item id="1">v</item><empty/></root>`,
		`<a xmlns:x="urn:a"><x:b>t</x:b></a>`,
	}
	ctx := context.Background()
	for _, input := range inputs {
		tree, diags, err := ParseXMLString(ctx, input)
		require.NoError(t, err, "parse %q", input)
		require.Empty(t, diags, "parse %q", input)
		require.Equal(t, input, serializeXML(t, tree))
	}
}

func TestSelectConvenience(t *testing.T) {
	tree, _, err := ParseHTMLString(context.Background(),
		`<div class="note"><p>a</p></div><p>b</p>`, WithFullDocument(false))
	require.NoError(t, err)

	got, err := Select(tree, ".note p")
	require.NoError(t, err)
	require.Len(t, got, 1)

	id, ok, err := SelectOne(tree, "p")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, got[0], id, "first p in document order is the nested one")

	_, err = Select(tree, "p >")
	require.Error(t, err, "compile errors propagate")
}

func TestSerializeSubtree(t *testing.T) {
	tree, _, err := ParseHTMLString(context.Background(),
		`<div><em>x</em></div>`, WithFullDocument(false))
	require.NoError(t, err)

	em, ok, err := SelectOne(tree, "em")
	require.NoError(t, err)
	require.True(t, ok)

	var sb strings.Builder
	require.NoError(t, SerializeHTML(&sb, tree, em))
	require.Equal(t, `<em>x</em>`, sb.String())
}
