package story_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/passages/pkg/story"
)

func ExampleStory_RenamePassage() {
	reg := story.NewRegistry()
	env := &story.Env{Resolver: reg}
	s := story.NewStory(env, "Demo")
	reg.Add(s)

	start := story.NewPassage(env)
	_ = start.Rename(context.Background(), "Start", story.Options{NoDupeValidation: true})
	_ = s.Add(start, story.Options{})
	_ = start.SetText(context.Background(), "Enter the [[Cave]] or [[leave->Exit]].", story.Options{})

	cave := story.NewPassage(env)
	_ = cave.Rename(context.Background(), "Cave", story.Options{NoDupeValidation: true})
	_ = s.Add(cave, story.Options{})

	if err := s.RenamePassage(context.Background(), cave, "Grotto", story.Options{}); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(start.Text())
	fmt.Println(start.Links(true))
	// Output:
	// Enter the [[Grotto]] or [[leave->Exit]].
	// [Grotto Exit]
}

func ExamplePassage_Excerpt() {
	p := story.NewPassage(nil)
	_ = p.SetText(context.Background(), "Tom & Jerry <3", story.Options{})
	fmt.Println(p.Excerpt())
	// Output: Tom &amp; Jerry &lt;3
}
