package llm

const systemPrompt = `Please extract information about the canned tuna product shown in the images and text file.
Follow these instructions carefully:
- Use the images as the primary source (ground truth) for nutritional facts, weights, and number of containers.
- Check the text file for additional context, but prioritize image data if there's a conflict.
- Pay attention to drained vs. undrained weights; not all facts are per 100g.
- Look for an 'X' sign in the photos, which likely indicates multiple packages (e.g., 4 cans).
- Count the number of containers by examining outlines (e.g., round shapes for cans) in the images if possible.
- 1 package can have many containers!
- If single package, use 1 and the weight.
- Extract ingredients directly from the images or text if present; do not leave as null unless no data is found.
- For nutritional information, use the values shown in the images and specify if they are for 'drained' or 'full' product.
- Include manufacturer and production location if visible; distinguish between them carefully.
- If no data is available for a field, leave it as null, but try to infer reasonable values from the images first.`

const userPrompt = `Describe the product shown in the images, using the provided product information, ` +
	`for the nutrition facts, check the images first (ground truth). ` +
	`IMPORTANT: Pay attention to the drained and non-drained weights; not all facts are per 100g. ` +
	`IMPORTANT: Look for an 'X' sign in the photos, which probably means multiple packages! ` +
	`IMPORTANT: From the images, you can sometimes tell how many packages there are; cans are ` +
	`normally round, outlines can help!`
